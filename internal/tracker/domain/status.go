package domain

// Status is the lifecycle state of a project.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"

	// StatusLegacyNotStarted is the default the first version of the API
	// stored. It is not a member of the Status enum and is only written when
	// the legacy default is switched on in config.
	StatusLegacyNotStarted Status = "Not Started"
)

// Statuses lists the enum members in declaration order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the enum members.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }
