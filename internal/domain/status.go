package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusIdle      Status = "idle"      // Created or stopped, not being worked on
	StatusActive    Status = "active"    // Currently being worked on (at most one per user)
	StatusCompleted Status = "completed" // Finished for this work session
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{StatusIdle, StatusActive, StatusCompleted}
}

// transitions defines the allowed status transitions.
// Flow: idle → active → completed
//
//	↑        │           │
//	└────────┴───────────┘ (stop / uncomplete / daily rollover)
var transitions = map[Status][]Status{
	StatusIdle:      {StatusActive},
	StatusActive:    {StatusIdle, StatusCompleted},
	StatusCompleted: {StatusIdle},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}
