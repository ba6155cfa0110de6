package model

// TrainingType groups trainings into a category (e.g. "Design course").
type TrainingType struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Training is a single training offer. It is created outside of this
// service and is read-only to the calendar core.
type Training struct {
	ID              string `yaml:"id" json:"id"`
	Title           string `yaml:"title" json:"title"`
	Status          Status `yaml:"status" json:"status"`
	MaxParticipants int    `yaml:"max_participants" json:"max_participants"`
	TrainingTypeID  string `yaml:"training_type_id" json:"training_type_id"`
}

// TrainingSession is one dated part of a Training. A training may have
// several sessions (multi-part or recurring trainings).
//
// StartDate / EndDate are kept as the raw strings from the catalog
// (YYYY-MM-DD, or an RFC3339 timestamp whose written date is used as-is).
// They are compared as calendar dates, never as instants.
type TrainingSession struct {
	ID           string   `yaml:"id" json:"id"`
	TrainingID   string   `yaml:"training_id" json:"training_id"`
	StartDate    string   `yaml:"start_date" json:"start_date"`
	EndDate      string   `yaml:"end_date" json:"end_date"`
	TrainerIDs   []string `yaml:"trainer_ids" json:"trainer_ids"`
	AssistantIDs []string `yaml:"assistant_ids" json:"assistant_ids"`
	LocationIDs  []string `yaml:"location_ids" json:"location_ids"`

	// RRule, if set, makes this session a template that is expanded into
	// concrete sessions when the catalog is loaded.
	RRule string `yaml:"rrule,omitempty" json:"rrule,omitempty"`

	// ExDates lists start dates (YYYY-MM-DD) removed from the recurrence.
	ExDates []string `yaml:"exdates,omitempty" json:"exdates,omitempty"`
}

// TrainingLocation is a place where sessions happen.
type TrainingLocation struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Address string `yaml:"address" json:"address"`
}

// TrainingRegistration links a participant to a training.
type TrainingRegistration struct {
	ID         string `yaml:"id" json:"id"`
	TrainingID string `yaml:"training_id" json:"training_id"`
	MemberID   string `yaml:"member_id" json:"member_id"`
}

// Member is a person that can train, assist or participate.
type Member struct {
	ID        string `yaml:"id" json:"id"`
	FirstName string `yaml:"first_name" json:"first_name"`
	LastName  string `yaml:"last_name" json:"last_name"`
}

// DisplayName returns "First Last", trimmed when one part is missing.
func (m Member) DisplayName() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	default:
		return m.FirstName + " " + m.LastName
	}
}
