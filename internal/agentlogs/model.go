package agentlogs

import "time"

// Entry is one transcript line recorded for an agent transaction.
type Entry struct {
	TransactionID string    `json:"transactionId"`
	Log           string    `json:"log"`
	CreatedAt     time.Time `json:"-"`
}

// Response wraps the transcript lines for one transaction.
type Response struct {
	Logs []Entry `json:"logs"`
}
