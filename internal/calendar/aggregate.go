package calendar

import (
	"time"

	"trainingcal/internal/grid"
	"trainingcal/internal/model"
)

// DefaultMaxPerCell is how many trainings a month cell lists before
// collapsing the rest into a "+N more" count.
const DefaultMaxPerCell = 3

// Attributed is a training together with the sessions attributed to one day.
type Attributed struct {
	Training model.Training
	Sessions []DatedSession
}

// Attribute groups the sessions on a day into distinct trainings.
//
// A session is attributed to its start date only, so a multi-day session
// is listed once rather than on every day it spans. Sessions whose
// training is not in idx are dropped. Trainings are returned in order of
// their first attributed session in onDay.
func Attribute(day time.Time, onDay []DatedSession, idx *Index) []Attributed {
	return attributeKey(grid.DateKey(day), onDay, idx)
}

func attributeKey(key string, onDay []DatedSession, idx *Index) []Attributed {
	var out []Attributed
	pos := make(map[string]int)
	for _, s := range onDay {
		if s.Start != key {
			continue
		}
		if i, ok := pos[s.TrainingID]; ok {
			out[i].Sessions = append(out[i].Sessions, s)
			continue
		}
		t, ok := idx.Training(s.TrainingID)
		if !ok {
			continue
		}
		pos[s.TrainingID] = len(out)
		out = append(out, Attributed{Training: t, Sessions: []DatedSession{s}})
	}
	return out
}

// TrainingSummary is what a month cell shows for one training.
type TrainingSummary struct {
	Training       model.Training        `json:"training"`
	TypeName       string                `json:"type_name,omitempty"`
	TypeColor      string                `json:"type_color,omitempty"`
	FirstSession   model.TrainingSession `json:"first_session"`
	LocationNames  []string              `json:"location_names"`
	SessionCount   int                   `json:"session_count"`
	FillPercentage int                   `json:"fill_percentage"`
}

// DaySummary is the aggregated training list of one month cell.
type DaySummary struct {
	Trainings []TrainingSummary `json:"trainings"`

	// Total is the number of distinct trainings before truncation and
	// More the number left out of Trainings.
	Total int `json:"total"`
	More  int `json:"more"`
}

// AggregateDay builds the training list for a month cell, keeping at most
// limit trainings (DefaultMaxPerCell when limit < 1).
func AggregateDay(day time.Time, onDay []DatedSession, idx *Index, limit int) DaySummary {
	return aggregate(Attribute(day, onDay, idx), idx, limit)
}

func aggregate(groups []Attributed, idx *Index, limit int) DaySummary {
	if limit < 1 {
		limit = DefaultMaxPerCell
	}
	out := DaySummary{
		Total:     len(groups),
		Trainings: make([]TrainingSummary, 0, min(len(groups), limit)),
	}
	if len(groups) > limit {
		out.More = len(groups) - limit
		groups = groups[:limit]
	}
	for _, g := range groups {
		out.Trainings = append(out.Trainings, summarize(g, idx))
	}
	return out
}

func summarize(g Attributed, idx *Index) TrainingSummary {
	first := g.Sessions[0]
	// Invalid capacity renders as an empty bar.
	pct, _ := FillPercentage(idx.RegistrationCount(g.Training.ID), g.Training.MaxParticipants)

	s := TrainingSummary{
		Training:       g.Training,
		FirstSession:   first.TrainingSession,
		LocationNames:  idx.LocationNames(first.LocationIDs),
		SessionCount:   len(g.Sessions),
		FillPercentage: pct,
	}
	if tt, ok := idx.TrainingType(g.Training.TrainingTypeID); ok {
		s.TypeName = tt.Name
		s.TypeColor = tt.Color
	}
	return s
}
