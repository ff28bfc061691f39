// Package backend is the typed client of the external referral REST API.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// API is everything the console and portal ask of the REST backend
type API interface {
	AdminName(ctx context.Context) (models.AdminName, error)
	AdminLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	// GoogleAuthURL is where the browser is redirected for Google sign-in; it is never called
	GoogleAuthURL() string

	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)
	UserLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	UserProfile(ctx context.Context) (models.Profile, error)

	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id string) (models.Campaign, error)
	CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, c models.Campaign) (models.Campaign, error)

	ListReferrers(ctx context.Context) ([]models.Customer, error)
	GetReferrer(ctx context.Context, email string) (models.Customer, error)
	ReferralsByCoupon(ctx context.Context, code string) (models.CouponReferrals, error)

	SendCelebration(ctx context.Context, req models.CelebrationRequest) error
	SendEmail(ctx context.Context, req models.EmailRequest) error
	SendUserMail(ctx context.Context, req models.EmailRequest) error
}

// Error is a non-2xx answer from the backend
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the backend answered 404
func (e *Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

var (
	// ErrUnavailable wraps failures to reach the backend at all
	ErrUnavailable = errors.New("backend unavailable")
	// ErrInvalidArgument is returned before any request is sent
	ErrInvalidArgument = errors.New("invalid backend argument")
)

// StatusCode returns the backend status carried by err, or 0
func StatusCode(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.StatusCode
	}
	return 0
}

type tokenKey struct{}

// WithToken attaches the bearer token to present on backend calls made with ctx
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token set by WithToken
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
