package models

import (
	"time"

	"github.com/google/uuid"
)

type StudentProfile struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name" validate:"required,max=255"`
	Email              string     `json:"email" validate:"required,email,max=255"`
	Locale             string     `json:"locale" validate:"max=10"`
	Settings           *string    `json:"settings" validate:"omitempty,max=500"`
	LastReminderSentAt *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
}

type StudentProfileRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Locale   string  `json:"locale"`
	Settings *string `json:"settings"`
}

type TokenRequest struct {
	Email string `json:"email"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
