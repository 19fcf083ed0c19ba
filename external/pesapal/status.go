package pesapal

import "strings"

// Workflow-facing status vocabulary. Matches the order status enum used by
// the record store.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// MappedStatus reduces Pesapal's status vocabulary to the three states the
// order workflow understands. Unrecognized codes map to pending: an order is
// never marked completed or failed speculatively.
func (t *TransactionStatus) MappedStatus() string {
	desc := strings.ToLower(t.PaymentStatusDescription)
	switch {
	case desc == "completed" || t.StatusCode == 1:
		return StatusCompleted
	case desc == "failed" || t.StatusCode == 2:
		return StatusFailed
	default:
		return StatusPending
	}
}
