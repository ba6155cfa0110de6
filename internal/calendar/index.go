package calendar

import (
	"sort"

	"trainingcal/internal/model"
)

// Index holds lookup tables over a catalog snapshot. It is built once per
// catalog and then only read, so it is safe to share between goroutines.
type Index struct {
	trainings     map[string]model.Training
	types         map[string]model.TrainingType
	locations     map[string]model.TrainingLocation
	members       map[string]model.Member
	registrations map[string]int

	sessions  []DatedSession
	malformed []error
}

// NewIndex builds an Index over c. Sessions with unusable dates are left
// out and reported by Malformed.
func NewIndex(c *model.Catalog) *Index {
	if c == nil {
		c = &model.Catalog{}
	}
	idx := &Index{
		trainings:     make(map[string]model.Training, len(c.Trainings)),
		types:         make(map[string]model.TrainingType, len(c.TrainingTypes)),
		locations:     make(map[string]model.TrainingLocation, len(c.Locations)),
		members:       make(map[string]model.Member, len(c.Members)),
		registrations: make(map[string]int),
	}
	for _, t := range c.Trainings {
		idx.trainings[t.ID] = t
	}
	for _, t := range c.TrainingTypes {
		idx.types[t.ID] = t
	}
	for _, l := range c.Locations {
		idx.locations[l.ID] = l
	}
	for _, m := range c.Members {
		idx.members[m.ID] = m
	}
	for _, r := range c.Registrations {
		idx.registrations[r.TrainingID]++
	}
	idx.sessions, idx.malformed = DateSessions(c.Sessions)
	return idx
}

// Training looks up a training by ID.
func (i *Index) Training(id string) (model.Training, bool) {
	t, ok := i.trainings[id]
	return t, ok
}

// TrainingType looks up a training type by ID.
func (i *Index) TrainingType(id string) (model.TrainingType, bool) {
	t, ok := i.types[id]
	return t, ok
}

// Location looks up a location by ID.
func (i *Index) Location(id string) (model.TrainingLocation, bool) {
	l, ok := i.locations[id]
	return l, ok
}

// Member looks up a member by ID.
func (i *Index) Member(id string) (model.Member, bool) {
	m, ok := i.members[id]
	return m, ok
}

// RegistrationCount returns how many registrations reference trainingID.
func (i *Index) RegistrationCount(trainingID string) int {
	return i.registrations[trainingID]
}

// Sessions returns every session with usable dates, in catalog order.
func (i *Index) Sessions() []DatedSession {
	return i.sessions
}

// Malformed returns the errors for sessions left out of the index.
func (i *Index) Malformed() []error {
	return i.malformed
}

// SessionsOf returns the sessions of trainingID ordered by start date.
func (i *Index) SessionsOf(trainingID string) []DatedSession {
	var out []DatedSession
	for _, s := range i.sessions {
		if s.TrainingID == trainingID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Start != out[b].Start {
			return out[a].Start < out[b].Start
		}
		return out[a].ID < out[b].ID
	})
	return out
}

// LocationNames resolves location IDs to names, dropping IDs that are not
// in the catalog.
func (i *Index) LocationNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if l, ok := i.Location(id); ok {
			names = append(names, l.Name)
		}
	}
	return names
}

// MemberNames resolves member IDs to display names, dropping IDs that are
// not in the catalog.
func (i *Index) MemberNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if m, ok := i.Member(id); ok {
			names = append(names, m.DisplayName())
		}
	}
	return names
}
