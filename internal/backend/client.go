package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	httptransport "github.com/go-kit/kit/transport/http"
	"golang.org/x/time/rate"

	reqcontext "github.com/prajwalbharadwajbm/referralhub/internal/context"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// ClientConfig holds the HTTP client settings
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

// call is what every endpoint receives: path segments below the base URL and an optional JSON body
type call struct {
	segments []string
	body     any
}

func at(segments ...string) call {
	return call{segments: segments}
}

func (c call) with(body any) call {
	c.body = body
	return c
}

// Client talks to the backend over HTTP. Each operation is a go-kit client endpoint
// behind a shared rate limiter.
type Client struct {
	base *url.URL

	adminName         endpoint.Endpoint
	adminLogin        endpoint.Endpoint
	register          endpoint.Endpoint
	userLogin         endpoint.Endpoint
	userProfile       endpoint.Endpoint
	listCampaigns     endpoint.Endpoint
	getCampaign       endpoint.Endpoint
	createCampaign    endpoint.Endpoint
	updateCampaign    endpoint.Endpoint
	listReferrers     endpoint.Endpoint
	getReferrer       endpoint.Endpoint
	referralsByCoupon endpoint.Endpoint
	sendCelebration   endpoint.Endpoint
	sendEmail         endpoint.Endpoint
	sendUserMail      endpoint.Endpoint
}

// NewClient builds the HTTP client for the backend at cfg.BaseURL
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme and host are required", cfg.BaseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	var limit endpoint.Middleware = func(next endpoint.Endpoint) endpoint.Endpoint { return next }
	if cfg.RateLimit > 0 {
		burst := max(cfg.RateBurst, 1)
		limit = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst))
	}

	options := []httptransport.ClientOption{
		httptransport.SetClient(httpClient),
		httptransport.ClientBefore(forwardHeaders),
	}

	mk := func(method string, dec httptransport.DecodeResponseFunc) endpoint.Endpoint {
		return limit(httptransport.NewClient(method, base, encodeCall, dec, options...).Endpoint())
	}

	return &Client{
		base:              base,
		adminName:         mk(http.MethodGet, decodeJSON[models.AdminName]),
		adminLogin:        mk(http.MethodPost, decodeJSON[models.LoginResponse]),
		register:          mk(http.MethodPost, decodeJSON[models.RegisterResponse]),
		userLogin:         mk(http.MethodPost, decodeJSON[models.LoginResponse]),
		userProfile:       mk(http.MethodGet, decodeJSON[models.Profile]),
		listCampaigns:     mk(http.MethodGet, decodeJSON[[]models.Campaign]),
		getCampaign:       mk(http.MethodGet, decodeJSON[models.Campaign]),
		createCampaign:    mk(http.MethodPost, decodeJSON[models.Campaign]),
		updateCampaign:    mk(http.MethodPut, decodeJSON[models.Campaign]),
		listReferrers:     mk(http.MethodGet, decodeJSON[[]models.Customer]),
		getReferrer:       mk(http.MethodGet, decodeJSON[models.Customer]),
		referralsByCoupon: mk(http.MethodGet, decodeJSON[models.CouponReferrals]),
		sendCelebration:   mk(http.MethodPost, decodeAck),
		sendEmail:         mk(http.MethodPost, decodeAck),
		sendUserMail:      mk(http.MethodPost, decodeAck),
	}, nil
}

// encodeCall resolves the request path and writes the JSON body, if any
func encodeCall(ctx context.Context, r *http.Request, request interface{}) error {
	c, ok := request.(call)
	if !ok {
		return fmt.Errorf("unexpected request type %T", request)
	}

	escaped := make([]string, len(c.segments))
	for i, s := range c.segments {
		if s == "" || s == "." || s == ".." {
			return fmt.Errorf("%w: path segment %q", ErrInvalidArgument, s)
		}
		escaped[i] = url.PathEscape(s)
	}
	r.URL = r.URL.JoinPath(escaped...)

	if c.body == nil {
		return nil
	}
	return httptransport.EncodeJSONRequest(ctx, r, c.body)
}

// forwardHeaders presents the caller's bearer token and propagates the request ID
func forwardHeaders(ctx context.Context, r *http.Request) context.Context {
	if token := TokenFromContext(ctx); token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	if id := reqcontext.GetRequestID(ctx); id != "" {
		r.Header.Set("X-Request-ID", id)
	}
	r.Header.Set("Accept", "application/json")
	return ctx
}

// decodeJSON decodes a 2xx body into T; an empty body yields the zero value
func decodeJSON[T any](_ context.Context, resp *http.Response) (interface{}, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	return out, nil
}

// decodeAck accepts any 2xx body; mail endpoints answer with JSON or plain text
func decodeAck(_ context.Context, resp *http.Response) (interface{}, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var ack models.MessageResponse
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(body, &ack) != nil {
		ack.Message = strings.TrimSpace(string(body))
	}
	return ack, nil
}

// decodeError turns a non-2xx response into *Error using the body's message when present
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &Error{StatusCode: resp.StatusCode, Message: msg}
}

// do runs an endpoint and classifies transport failures
func do[T any](ctx context.Context, e endpoint.Endpoint, c call) (T, error) {
	var zero T

	resp, err := e(ctx, c)
	if err != nil {
		var be *Error
		switch {
		case errors.As(err, &be), errors.Is(err, ratelimit.ErrLimited),
			errors.Is(err, ErrInvalidArgument), errors.Is(err, context.Canceled):
			return zero, err
		}
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", resp)
	}
	return out, nil
}

func (c *Client) AdminName(ctx context.Context) (models.AdminName, error) {
	return do[models.AdminName](ctx, c.adminName, at("admin", "name"))
}

func (c *Client) AdminLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	return do[models.LoginResponse](ctx, c.adminLogin, at("admin", "login").with(req))
}

func (c *Client) GoogleAuthURL() string {
	return c.base.JoinPath("auth", "google").String()
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	return do[models.RegisterResponse](ctx, c.register, at("register").with(req))
}

func (c *Client) UserLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	return do[models.LoginResponse](ctx, c.userLogin, at("register", "login").with(req))
}

func (c *Client) UserProfile(ctx context.Context) (models.Profile, error) {
	return do[models.Profile](ctx, c.userProfile, at("user", "profile"))
}

func (c *Client) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return do[[]models.Campaign](ctx, c.listCampaigns, at("campaign", "data"))
}

func (c *Client) GetCampaign(ctx context.Context, id string) (models.Campaign, error) {
	return do[models.Campaign](ctx, c.getCampaign, at("campaign", id))
}

func (c *Client) CreateCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error) {
	return do[models.Campaign](ctx, c.createCampaign, at("campaign").with(campaign))
}

func (c *Client) UpdateCampaign(ctx context.Context, id string, campaign models.Campaign) (models.Campaign, error) {
	return do[models.Campaign](ctx, c.updateCampaign, at("campaign", id).with(campaign))
}

func (c *Client) ListReferrers(ctx context.Context) ([]models.Customer, error) {
	return do[[]models.Customer](ctx, c.listReferrers, at("refer", "data"))
}

func (c *Client) GetReferrer(ctx context.Context, email string) (models.Customer, error) {
	return do[models.Customer](ctx, c.getReferrer, at("refer", "data", email))
}

func (c *Client) ReferralsByCoupon(ctx context.Context, code string) (models.CouponReferrals, error) {
	return do[models.CouponReferrals](ctx, c.referralsByCoupon, at("refer", "by-coupon", code))
}

func (c *Client) SendCelebration(ctx context.Context, req models.CelebrationRequest) error {
	_, err := do[models.MessageResponse](ctx, c.sendCelebration, at("refer", "send-celebration").with(req))
	return err
}

func (c *Client) SendEmail(ctx context.Context, req models.EmailRequest) error {
	_, err := do[models.MessageResponse](ctx, c.sendEmail, at("send-email").with(req))
	return err
}

func (c *Client) SendUserMail(ctx context.Context, req models.EmailRequest) error {
	_, err := do[models.MessageResponse](ctx, c.sendUserMail, at("user", "sendmail").with(req))
	return err
}
