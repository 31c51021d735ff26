package models

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

var (
	// CurrentStatuses are the statuses of orders still in flight.
	CurrentStatuses = []Status{StatusPending, StatusProcessing, StatusShipped}
	// PreviousStatuses are terminal statuses.
	PreviousStatuses = []Status{StatusCompleted, StatusCancelled}
)

// AllStatuses in the order they are offered in forms.
func AllStatuses() []Status {
	all := make([]Status, 0, len(CurrentStatuses)+len(PreviousStatuses))
	all = append(all, CurrentStatuses...)
	return append(all, PreviousStatuses...)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	return s.IsCurrent() || s.IsPrevious()
}

func (s Status) IsCurrent() bool {
	for _, c := range CurrentStatuses {
		if s == c {
			return true
		}
	}
	return false
}

func (s Status) IsPrevious() bool {
	for _, p := range PreviousStatuses {
		if s == p {
			return true
		}
	}
	return false
}
