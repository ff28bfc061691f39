package models

import (
	"errors"
	"strings"
)

var (
	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
	ErrMissingName     = errors.New("name is required")
)

// LoginRequest is used by both admin and end-user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate rejects blank credentials so no backend call is made for them
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// Normalize trims the email
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// LoginResponse is what the backend returns for a successful login
type LoginResponse struct {
	Token        string `json:"token"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
	Message      string `json:"message,omitempty"`
}

// RegisterRequest creates an end-user account, optionally attributed to a referrer's code
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Age          string `json:"age,omitempty"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// Validate checks the fields the registration form marks as required
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// Normalize trims user-entered text
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.ReferralCode = strings.TrimSpace(r.ReferralCode)
}

// RegisterResponse is the backend's answer to a registration
type RegisterResponse struct {
	Message      string `json:"message,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// Profile is the logged-in end user's own record
type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ReferralCode string `json:"referralCode"`
}

// AdminName is the display name of the signed-in admin
type AdminName struct {
	Name string `json:"name"`
}
