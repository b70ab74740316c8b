package models

import (
	"time"

	"github.com/dmitrijs2005/worklog/internal/activity"
)

// ActivityEvent is an append-only record of a significant user action.
type ActivityEvent struct {
	ID        string
	UserID    string
	Activity  string
	Type      activity.Kind
	CreatedAt time.Time
}
