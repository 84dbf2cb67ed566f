package models

type User struct {
	ID       int64
	Email    string
	PassHash []byte
	IsAdmin  bool
}

// SendResult is the outcome of a single mail submission.
type SendResult struct {
	Delivered bool
	Detail    string
}

// BulkSummary aggregates per-recipient outcomes of one fan-out.
// FailedEmails keeps the original request order.
type BulkSummary struct {
	SuccessCount int
	FailedEmails []string
}
