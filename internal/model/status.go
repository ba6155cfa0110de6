package model

// Status is the lifecycle state of a Training.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusPlanned           Status = "planned"
	StatusRegistrationsOpen Status = "registrations_open"
	StatusInProgress        Status = "in_progress"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
)

// Statuses lists every known status in declaration order.
var Statuses = []Status{
	StatusDraft,
	StatusPlanned,
	StatusRegistrationsOpen,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// DisplayMeta is how a status is presented in calendar views.
type DisplayMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := s.lookup()
	return ok
}

// Meta returns the display metadata for s. Unknown statuses get a neutral
// grey entry labeled with the raw value.
func (s Status) Meta() DisplayMeta {
	if m, ok := s.lookup(); ok {
		return m
	}
	return DisplayMeta{Label: string(s), Color: "#9ca3af"}
}

func (s Status) lookup() (DisplayMeta, bool) {
	switch s {
	case StatusDraft:
		return DisplayMeta{Label: "Draft", Color: "#6b7280"}, true
	case StatusPlanned:
		return DisplayMeta{Label: "Planned", Color: "#3b82f6"}, true
	case StatusRegistrationsOpen:
		return DisplayMeta{Label: "Registrations open", Color: "#22c55e"}, true
	case StatusInProgress:
		return DisplayMeta{Label: "In progress", Color: "#f59e0b"}, true
	case StatusCompleted:
		return DisplayMeta{Label: "Completed", Color: "#8b5cf6"}, true
	case StatusCancelled:
		return DisplayMeta{Label: "Cancelled", Color: "#ef4444"}, true
	}
	return DisplayMeta{}, false
}
