package domain

// Decision is the normalized verdict on a payment attempt.
type Decision string

const (
	DecisionAccepted Decision = "ACCEPTED"
	DecisionReview   Decision = "REVIEW"
	DecisionDeclined Decision = "DECLINED"
	DecisionError    Decision = "ERROR"
)

// Approved returns true if the attempt may be treated as paid.
func (d Decision) Approved() bool {
	return d == DecisionAccepted
}

// TransactionOutcome is the sole value returned up the stack for an attempt.
// UserMessage is safe to show to the customer; AdminMessage carries reason
// codes and correlation identifiers and must stay out of customer-facing UI.
type TransactionOutcome struct {
	Decision      Decision
	ReasonCode    int
	TransactionID string
	UserMessage   string
	AdminMessage  string
}
