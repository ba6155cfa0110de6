package calendar

import (
	"sort"

	"trainingcal/internal/model"
)

// MaxStatusIndicators is how many status dots a year-view day shows.
const MaxStatusIndicators = 3

// statusPriority orders statuses from most to least important.
var statusPriority = []model.Status{
	model.StatusInProgress,
	model.StatusRegistrationsOpen,
	model.StatusPlanned,
	model.StatusCompleted,
	model.StatusDraft,
	model.StatusCancelled,
}

// StatusPriority returns the rank of s (0 is highest) or -1 when s is not
// a known status.
func StatusPriority(s model.Status) int {
	for i, p := range statusPriority {
		if p == s {
			return i
		}
	}
	return -1
}

// sortRank puts unknown statuses after every known one.
func sortRank(s model.Status) int {
	if r := StatusPriority(s); r >= 0 {
		return r
	}
	return len(statusPriority)
}

// StatusIndicator is one status dot.
type StatusIndicator struct {
	Status model.Status `json:"status"`
	Label  string       `json:"label"`
	Color  string       `json:"color"`
}

// StatusSummary is the set of dots shown for a day.
type StatusSummary struct {
	Indicators []StatusIndicator `json:"indicators"`

	// Overflow is set when more trainings than MaxStatusIndicators are
	// active on the day.
	Overflow bool `json:"overflow"`
}

// ResolveStatuses reduces the trainings active on a day to at most
// MaxStatusIndicators distinct statuses, ordered by priority. Unknown
// statuses sort last, in order of first appearance.
func ResolveStatuses(trainings []model.Training) StatusSummary {
	seen := make(map[model.Status]bool, len(trainings))
	statuses := make([]model.Status, 0, len(trainings))
	for _, t := range trainings {
		if seen[t.Status] {
			continue
		}
		seen[t.Status] = true
		statuses = append(statuses, t.Status)
	}

	sort.SliceStable(statuses, func(a, b int) bool {
		return sortRank(statuses[a]) < sortRank(statuses[b])
	})
	if len(statuses) > MaxStatusIndicators {
		statuses = statuses[:MaxStatusIndicators]
	}

	out := StatusSummary{
		Indicators: make([]StatusIndicator, 0, len(statuses)),
		Overflow:   len(trainings) > MaxStatusIndicators,
	}
	for _, s := range statuses {
		meta := s.Meta()
		out.Indicators = append(out.Indicators, StatusIndicator{Status: s, Label: meta.Label, Color: meta.Color})
	}
	return out
}
