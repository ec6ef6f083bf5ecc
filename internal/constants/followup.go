package constants

type FollowupStatus int

const (
	FollowupStatusUnknown FollowupStatus = iota
	FollowupStatusPending
	FollowupStatusCompleted
)

func (s FollowupStatus) String() string {
	switch s {
	case FollowupStatusPending:
		return "Pending"
	case FollowupStatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

var followupStatusMap = map[string]FollowupStatus{
	"Pending":   FollowupStatusPending,
	"Completed": FollowupStatusCompleted,
}

func ParseFollowupStatus(s string) FollowupStatus {
	if status, ok := followupStatusMap[s]; ok {
		return status
	}
	return FollowupStatusUnknown
}

// Follow-up types. Payment is the only one produced by the billing core.
const (
	FollowupTypePayment = "Payment"
	FollowupTypeCall    = "Call"
	FollowupTypeMessage = "Message"
	FollowupTypeVisit   = "Visit"
	FollowupTypeOther   = "Other"
)
