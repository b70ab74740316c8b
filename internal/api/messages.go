package api

import (
	"time"

	"github.com/dmitrijs2005/worklog/internal/activity"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"max=100"`
	Phone    string `json:"phone" validate:"max=32"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by Login and RefreshToken.
type TokenResponse struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	RefreshToken    string    `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutResponse struct{}

type ProfileRequest struct{}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User User `json:"user"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
}

type TaskResponse struct {
	Task Task `json:"task"`
}

type ListTasksRequest struct{}

type ListTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type ToggleTaskRequest struct {
	TaskID string `json:"task_id" validate:"required,uuid"`
}

type CountTasksRequest struct{}

type CountTasksResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

// AppendLogRequest adds one comment to a day. An empty Date means today.
type AppendLogRequest struct {
	Date    string `json:"date" validate:"omitempty,datekey"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

type LogRecord struct {
	Date     string   `json:"date"`
	Comments []string `json:"comments"`
}

type AppendLogResponse struct {
	Record LogRecord `json:"record"`
}

type ListLogsRequest struct{}

type MonthGroup struct {
	Month   string      `json:"month"`
	Records []LogRecord `json:"records"`
}

// ListLogsResponse holds month groups, newest month first.
type ListLogsResponse struct {
	Months []MonthGroup `json:"months"`
}

type ExportLogsRequest struct{}

type ExportLogsResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Size      int       `json:"size"`
}

type ListActivitiesRequest struct {
	Limit int `json:"limit" validate:"gte=0,lte=500"`
}

type Activity struct {
	ID        string            `json:"id"`
	Activity  string            `json:"activity"`
	Type      activity.Kind     `json:"type"`
	Category  activity.Category `json:"category"`
	CreatedAt time.Time         `json:"created_at"`
}

type ListActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}
