package application

// Application statuses. Pending is the sole initial state; accepted and
// rejected are terminal. All transitions are administrator-initiated and no
// linear order is enforced between the non-terminal states.
const (
	StatusPending            = "pending"
	StatusUnderReview        = "under_review"
	StatusInterviewScheduled = "interview_scheduled"
	StatusAccepted           = "accepted"
	StatusRejected           = "rejected"
)

// Statuses lists every valid status.
var Statuses = []string{
	StatusPending,
	StatusUnderReview,
	StatusInterviewScheduled,
	StatusAccepted,
	StatusRejected,
}

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func Terminal(s string) bool {
	return s == StatusAccepted || s == StatusRejected
}
