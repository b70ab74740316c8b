// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account plus the profile fields mirrored at registration.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	PasswordHash []byte
	CreatedAt    time.Time
}
