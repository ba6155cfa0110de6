package catalog

import (
	"errors"
	"fmt"

	"trainingcal/internal/calendar"
	"trainingcal/internal/model"
)

// Issue is one data-quality problem found in a catalog. The calendar
// recovers from all of them; Validate only makes them visible.
type Issue struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Err    error  `json:"-"`
	Detail string `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Entity, i.ID, i.Detail)
}

func newIssue(entity, id string, err error) Issue {
	return Issue{Entity: entity, ID: id, Err: err, Detail: err.Error()}
}

// Validate lists malformed dates, dangling references, invalid capacities,
// unknown statuses and duplicate IDs in c.
func Validate(c *model.Catalog) []Issue {
	var issues []Issue

	trainings := make(map[string]bool, len(c.Trainings))
	for _, t := range c.Trainings {
		if trainings[t.ID] {
			issues = append(issues, newIssue("training", t.ID, errors.New("duplicate id")))
		}
		trainings[t.ID] = true
	}
	types := idSet(c.TrainingTypes, func(t model.TrainingType) string { return t.ID })
	locations := idSet(c.Locations, func(l model.TrainingLocation) string { return l.ID })
	members := idSet(c.Members, func(m model.Member) string { return m.ID })

	for _, t := range c.Trainings {
		if _, err := calendar.FillPercentage(0, t.MaxParticipants); err != nil {
			issues = append(issues, newIssue("training", t.ID, err))
		}
		if !t.Status.Valid() {
			issues = append(issues, newIssue("training", t.ID, fmt.Errorf("unknown status %q", t.Status)))
		}
		if t.TrainingTypeID != "" && !types[t.TrainingTypeID] {
			issues = append(issues, newIssue("training", t.ID, dangling("training type", t.TrainingTypeID)))
		}
	}

	sessions := make(map[string]bool, len(c.Sessions))
	for _, s := range c.Sessions {
		if sessions[s.ID] {
			issues = append(issues, newIssue("session", s.ID, errors.New("duplicate id")))
		}
		sessions[s.ID] = true

		if _, err := calendar.DateSession(s); err != nil {
			issues = append(issues, newIssue("session", s.ID, err))
		}
		if !trainings[s.TrainingID] {
			issues = append(issues, newIssue("session", s.ID, dangling("training", s.TrainingID)))
		}
		for _, id := range s.LocationIDs {
			if !locations[id] {
				issues = append(issues, newIssue("session", s.ID, dangling("location", id)))
			}
		}
		for _, id := range append(append([]string{}, s.TrainerIDs...), s.AssistantIDs...) {
			if !members[id] {
				issues = append(issues, newIssue("session", s.ID, dangling("member", id)))
			}
		}
	}

	for _, r := range c.Registrations {
		if !trainings[r.TrainingID] {
			issues = append(issues, newIssue("registration", r.ID, dangling("training", r.TrainingID)))
		}
	}
	return issues
}

func dangling(kind, id string) error {
	return fmt.Errorf("%w: %s %q", calendar.ErrDanglingReference, kind, id)
}

func idSet[T any](items []T, id func(T) string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		out[id(it)] = true
	}
	return out
}
