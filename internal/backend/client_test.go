package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kit/kit/ratelimit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqcontext "github.com/prajwalbharadwajbm/referralhub/internal/context"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

type recorded struct {
	method string
	path   string
	auth   string
	reqID  string
	body   string
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, chan recorded) {
	t.Helper()
	calls := make(chan recorded, 10)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls <- recorded{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			auth:   r.Header.Get("Authorization"),
			reqID:  r.Header.Get("X-Request-ID"),
			body:   string(body),
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c, calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_ListCampaigns(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"_id":"1","title":"Summer","startDate":"2025-01-01T00:00:00.000Z","discountValue":20,"status":"active"}]`)
	})

	campaigns, err := c.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "Summer", campaigns[0].Title)
	assert.True(t, campaigns[0].DiscountValue.Equal(decimal.NewFromInt(20)))

	call := <-calls
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/campaign/data", call.path)
	assert.Empty(t, call.auth)
}

func TestClient_Paths(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		invoke func() error
		method string
		path   string
	}{
		{name: "admin name", invoke: func() error { _, err := c.AdminName(ctx); return err }, method: "GET", path: "/admin/name"},
		{name: "admin login", invoke: func() error { _, err := c.AdminLogin(ctx, models.LoginRequest{}); return err }, method: "POST", path: "/admin/login"},
		{name: "register", invoke: func() error { _, err := c.Register(ctx, models.RegisterRequest{}); return err }, method: "POST", path: "/register"},
		{name: "user login", invoke: func() error { _, err := c.UserLogin(ctx, models.LoginRequest{}); return err }, method: "POST", path: "/register/login"},
		{name: "profile", invoke: func() error { _, err := c.UserProfile(ctx); return err }, method: "GET", path: "/user/profile"},
		{name: "get campaign", invoke: func() error { _, err := c.GetCampaign(ctx, "abc"); return err }, method: "GET", path: "/campaign/abc"},
		{name: "create campaign", invoke: func() error { _, err := c.CreateCampaign(ctx, models.Campaign{}); return err }, method: "POST", path: "/campaign"},
		{name: "update campaign", invoke: func() error { _, err := c.UpdateCampaign(ctx, "abc", models.Campaign{}); return err }, method: "PUT", path: "/campaign/abc"},
		{name: "referrer", invoke: func() error { _, err := c.GetReferrer(ctx, "a@b.com"); return err }, method: "GET", path: "/refer/data/a@b.com"},
		{name: "by coupon", invoke: func() error { _, err := c.ReferralsByCoupon(ctx, "245cfcca"); return err }, method: "GET", path: "/refer/by-coupon/245cfcca"},
		{name: "celebration", invoke: func() error { return c.SendCelebration(ctx, models.CelebrationRequest{}) }, method: "POST", path: "/refer/send-celebration"},
		{name: "send email", invoke: func() error { return c.SendEmail(ctx, models.EmailRequest{}) }, method: "POST", path: "/send-email"},
		{name: "user mail", invoke: func() error { return c.SendUserMail(ctx, models.EmailRequest{}) }, method: "POST", path: "/user/sendmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.invoke())
			call := <-calls
			assert.Equal(t, tt.method, call.method)
			assert.Equal(t, tt.path, call.path)
		})
	}
}

func TestClient_EscapesPathSegments(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	_, err := c.GetCampaign(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/campaign/a%2Fb%20c", (<-calls).path)

	_, err = c.GetCampaign(context.Background(), "..")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.GetCampaign(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClient_SendsTokenRequestIDAndBody(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.LoginResponse{Token: "tok-1"})
	})

	ctx := WithToken(context.Background(), "secret")
	ctx = reqcontext.WithRequestID(ctx, "req-9")

	resp, err := c.AdminLogin(ctx, models.LoginRequest{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)

	call := <-calls
	assert.Equal(t, "Bearer secret", call.auth)
	assert.Equal(t, "req-9", call.reqID)
	assert.JSONEq(t, `{"email":"admin@example.com","password":"pw"}`, call.body)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message field", status: http.StatusUnauthorized, body: `{"message":"Invalid credentials"}`, wantMsg: "Invalid credentials"},
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"bad input"}`, wantMsg: "bad input"},
		{name: "plain text", status: http.StatusInternalServerError, body: `boom`, wantMsg: "Internal Server Error"},
		{name: "not found", status: http.StatusNotFound, body: ``, wantMsg: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetCampaign(context.Background(), "x")
			var be *Error
			require.True(t, errors.As(err, &be), "got %v", err)
			assert.Equal(t, tt.status, be.StatusCode)
			assert.Equal(t, tt.wantMsg, be.Message)
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestClient_AckAcceptsPlainText(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "Email sent successfully")
	})

	assert.NoError(t, c.SendUserMail(context.Background(), models.EmailRequest{Email: "a@b.c", Subject: "s"}))
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.ListReferrers(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, StatusCode(err))
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: time.Second, RateLimit: 0.001, RateBurst: 1})
	require.NoError(t, err)

	_, err = c.ListCampaigns(context.Background())
	require.NoError(t, err)
	_, err = c.ListCampaigns(context.Background())
	assert.ErrorIs(t, err, ratelimit.ErrLimited)
}

func TestNewClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "localhost:5000", "://bad"} {
		_, err := NewClient(ClientConfig{BaseURL: u})
		assert.Error(t, err, u)
	}
}

func TestClient_GoogleAuthURL(t *testing.T) {
	c, err := NewClient(ClientConfig{BaseURL: "http://localhost:5000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/auth/google", c.GoogleAuthURL())

	c, err = NewClient(ClientConfig{BaseURL: "https://api.example.com/v1"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/auth/google", c.GoogleAuthURL())
}
