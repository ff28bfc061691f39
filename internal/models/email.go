package models

import (
	"errors"
	"strings"
)

var ErrMissingSubject = errors.New("subject is required")

// EmailRequest asks the backend to send a transactional email
type EmailRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Validate checks recipient and subject
func (r *EmailRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(r.Subject) == "" {
		return ErrMissingSubject
	}
	return nil
}

// CelebrationRequest asks the backend to congratulate a referrer on a new milestone
type CelebrationRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MessageResponse is the generic acknowledgement returned by mail endpoints
type MessageResponse struct {
	Message string `json:"message"`
}
