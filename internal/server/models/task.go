package models

import "time"

// Task is a unit of work. Status false means pending, true completed.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      bool
	CreatedAt   time.Time
}

// TaskCounts is derived from two aggregate queries; Pending = Total - Completed.
type TaskCounts struct {
	Total     int64
	Pending   int64
	Completed int64
}
