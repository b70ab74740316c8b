package models

import "time"

// LogRecord is one user's comments for one calendar day. Date is a
// DD-MM-YYYY key; Comments keep insertion order.
type LogRecord struct {
	Date     string
	Comments []string
}

// LogComment is a single stored row of the append-only comment log.
type LogComment struct {
	ID        int64
	UserID    string
	Date      string
	Comment   string
	CreatedAt time.Time
}

// LogExport describes an uploaded export document.
type LogExport struct {
	Key       string
	URL       string
	ExpiresAt time.Time
	Size      int
}
