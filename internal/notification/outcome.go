package notification

// Outcome reports what happened to a notification. The order path only logs it.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeQueued
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeQueued:
		return "queued"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
