package model

// Catalog is the flat set of collections the calendar is computed from.
// None of the slices need to be sorted.
type Catalog struct {
	TrainingTypes []TrainingType         `yaml:"training_types" json:"training_types"`
	Locations     []TrainingLocation     `yaml:"locations" json:"locations"`
	Members       []Member               `yaml:"members" json:"members"`
	Trainings     []Training             `yaml:"trainings" json:"trainings"`
	Sessions      []TrainingSession      `yaml:"sessions" json:"sessions"`
	Registrations []TrainingRegistration `yaml:"registrations" json:"registrations"`
}
