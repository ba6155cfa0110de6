package calendar

import "trainingcal/internal/model"

// SessionDetail is a session with its references resolved.
type SessionDetail struct {
	model.TrainingSession

	Start      string   `json:"start"`
	End        string   `json:"end"`
	Locations  []string `json:"locations"`
	Trainers   []string `json:"trainers"`
	Assistants []string `json:"assistants"`
}

// TrainingDetail is the payload behind OnViewTraining: everything known
// about one training.
type TrainingDetail struct {
	Training          model.Training      `json:"training"`
	Type              *model.TrainingType `json:"type,omitempty"`
	Sessions          []SessionDetail     `json:"sessions"`
	RegistrationCount int                 `json:"registration_count"`
	FillPercentage    int                 `json:"fill_percentage"`
}

// Detail returns the detail of training id. The boolean is false when the
// training is not in the catalog.
func (i *Index) Detail(id string) (TrainingDetail, bool) {
	t, ok := i.Training(id)
	if !ok {
		return TrainingDetail{}, false
	}

	regs := i.RegistrationCount(id)
	pct, _ := FillPercentage(regs, t.MaxParticipants)

	d := TrainingDetail{
		Training:          t,
		RegistrationCount: regs,
		FillPercentage:    pct,
	}
	if tt, ok := i.TrainingType(t.TrainingTypeID); ok {
		d.Type = &tt
	}
	sessions := i.SessionsOf(id)
	d.Sessions = make([]SessionDetail, 0, len(sessions))
	for _, s := range sessions {
		d.Sessions = append(d.Sessions, SessionDetail{
			TrainingSession: s.TrainingSession,
			Start:           s.Start,
			End:             s.End,
			Locations:       i.LocationNames(s.LocationIDs),
			Trainers:        i.MemberNames(s.TrainerIDs),
			Assistants:      i.MemberNames(s.AssistantIDs),
		})
	}
	return d, true
}
