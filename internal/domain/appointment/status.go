package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions is the allowed flow of the repair workflow.
// Completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusAssigned, StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ActiveStatuses are the statuses that count against a technician's
// capacity.
var ActiveStatuses = []Status{StatusAssigned, StatusInProgress}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) IsActive() bool {
	return s == StatusAssigned || s == StatusInProgress
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed step.
// Assigned -> assigned is allowed to support reassignment.
func CanTransition(from, to Status) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusScheduled
}
