package backend

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-kit/kit/ratelimit"

	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// InstrumentedAPI wraps an API with metrics collection
type InstrumentedAPI struct {
	next    API
	metrics *metrics.Metrics
}

// NewInstrumentedAPI creates a new instrumented API
func NewInstrumentedAPI(api API, metrics *metrics.Metrics) API {
	return &InstrumentedAPI{
		next:    api,
		metrics: metrics,
	}
}

func (a *InstrumentedAPI) observe(operation string, begin time.Time, err error) {
	a.metrics.RecordBackendCall(operation, time.Since(begin).Seconds())
	if err != nil {
		a.metrics.RecordBackendError(operation, errorType(err))
	}
}

// errorType is a low-cardinality label for err
func errorType(err error) string {
	if code := StatusCode(err); code != 0 {
		return "http_" + strconv.Itoa(code)
	}
	switch {
	case errors.Is(err, ratelimit.ErrLimited):
		return "rate_limited"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	}
	return "other"
}

func (a *InstrumentedAPI) AdminName(ctx context.Context) (name models.AdminName, err error) {
	defer func(begin time.Time) { a.observe("AdminName", begin, err) }(time.Now())
	return a.next.AdminName(ctx)
}

func (a *InstrumentedAPI) AdminLogin(ctx context.Context, req models.LoginRequest) (resp models.LoginResponse, err error) {
	defer func(begin time.Time) { a.observe("AdminLogin", begin, err) }(time.Now())
	return a.next.AdminLogin(ctx, req)
}

func (a *InstrumentedAPI) GoogleAuthURL() string {
	return a.next.GoogleAuthURL()
}

func (a *InstrumentedAPI) Register(ctx context.Context, req models.RegisterRequest) (resp models.RegisterResponse, err error) {
	defer func(begin time.Time) { a.observe("Register", begin, err) }(time.Now())
	return a.next.Register(ctx, req)
}

func (a *InstrumentedAPI) UserLogin(ctx context.Context, req models.LoginRequest) (resp models.LoginResponse, err error) {
	defer func(begin time.Time) { a.observe("UserLogin", begin, err) }(time.Now())
	return a.next.UserLogin(ctx, req)
}

func (a *InstrumentedAPI) UserProfile(ctx context.Context) (profile models.Profile, err error) {
	defer func(begin time.Time) { a.observe("UserProfile", begin, err) }(time.Now())
	return a.next.UserProfile(ctx)
}

func (a *InstrumentedAPI) ListCampaigns(ctx context.Context) (campaigns []models.Campaign, err error) {
	defer func(begin time.Time) { a.observe("ListCampaigns", begin, err) }(time.Now())
	return a.next.ListCampaigns(ctx)
}

func (a *InstrumentedAPI) GetCampaign(ctx context.Context, id string) (campaign models.Campaign, err error) {
	defer func(begin time.Time) { a.observe("GetCampaign", begin, err) }(time.Now())
	return a.next.GetCampaign(ctx, id)
}

func (a *InstrumentedAPI) CreateCampaign(ctx context.Context, c models.Campaign) (campaign models.Campaign, err error) {
	defer func(begin time.Time) { a.observe("CreateCampaign", begin, err) }(time.Now())
	return a.next.CreateCampaign(ctx, c)
}

func (a *InstrumentedAPI) UpdateCampaign(ctx context.Context, id string, c models.Campaign) (campaign models.Campaign, err error) {
	defer func(begin time.Time) { a.observe("UpdateCampaign", begin, err) }(time.Now())
	return a.next.UpdateCampaign(ctx, id, c)
}

func (a *InstrumentedAPI) ListReferrers(ctx context.Context) (customers []models.Customer, err error) {
	defer func(begin time.Time) { a.observe("ListReferrers", begin, err) }(time.Now())
	return a.next.ListReferrers(ctx)
}

func (a *InstrumentedAPI) GetReferrer(ctx context.Context, email string) (customer models.Customer, err error) {
	defer func(begin time.Time) { a.observe("GetReferrer", begin, err) }(time.Now())
	return a.next.GetReferrer(ctx, email)
}

func (a *InstrumentedAPI) ReferralsByCoupon(ctx context.Context, code string) (referrals models.CouponReferrals, err error) {
	defer func(begin time.Time) { a.observe("ReferralsByCoupon", begin, err) }(time.Now())
	return a.next.ReferralsByCoupon(ctx, code)
}

func (a *InstrumentedAPI) SendCelebration(ctx context.Context, req models.CelebrationRequest) (err error) {
	defer func(begin time.Time) { a.observe("SendCelebration", begin, err) }(time.Now())
	return a.next.SendCelebration(ctx, req)
}

func (a *InstrumentedAPI) SendEmail(ctx context.Context, req models.EmailRequest) (err error) {
	defer func(begin time.Time) { a.observe("SendEmail", begin, err) }(time.Now())
	return a.next.SendEmail(ctx, req)
}

func (a *InstrumentedAPI) SendUserMail(ctx context.Context, req models.EmailRequest) (err error) {
	defer func(begin time.Time) { a.observe("SendUserMail", begin, err) }(time.Now())
	return a.next.SendUserMail(ctx, req)
}
