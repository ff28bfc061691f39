package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/prajwalbharadwajbm/referralhub/internal/backend"
	"github.com/prajwalbharadwajbm/referralhub/internal/listing"
	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
	"github.com/prajwalbharadwajbm/referralhub/internal/share"
)

const (
	defaultUserName = "User"
	defaultCode     = "N/A"
)

// PortalService is the end-user portal
type PortalService interface {
	Register(ctx context.Context, sess *session.Session, req models.RegisterRequest) (models.RegisterResponse, error)
	Login(ctx context.Context, sess *session.Session, req models.LoginRequest) (UserView, error)
	Logout(ctx context.Context, sess *session.Session) error
	Profile(ctx context.Context, sess *session.Session) (models.Profile, error)
	Dashboard(ctx context.Context, sess *session.Session) (UserDashboard, error)
	Rewards(ctx context.Context, sess *session.Session) (Rewards, error)
	Friends(ctx context.Context, sess *session.Session) (Friends, error)
	Offers(ctx context.Context, sess *session.Session) ([]Offer, error)
	ClaimOffer(ctx context.Context, sess *session.Session, id string) (models.MessageResponse, error)
	PublicCampaigns(ctx context.Context) ([]PublicCampaign, error)
}

// Portal implements PortalService against the REST backend
type Portal struct {
	api       backend.API
	metrics   *metrics.Metrics
	publicURL string

	mu sync.Mutex
	// last celebrated referral count per user email; outlives the user's sessions
	celebrated map[string]int
}

// NewPortalService creates the portal. publicURL is the origin share links point at.
func NewPortalService(api backend.API, m *metrics.Metrics, publicURL string) *Portal {
	return &Portal{
		api:        api,
		metrics:    m,
		publicURL:  strings.TrimRight(publicURL, "/"),
		celebrated: make(map[string]int),
	}
}

func celebrationKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Portal) lastCelebrated(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.celebrated[celebrationKey(email)]
}

func (s *Portal) markCelebrated(email string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := celebrationKey(email)
	s.celebrated[key] = max(s.celebrated[key], count)
}

func (s *Portal) authorized(ctx context.Context, sess *session.Session) (context.Context, error) {
	if err := requireUser(sess); err != nil {
		return ctx, err
	}
	return backend.WithToken(ctx, sess.BearerToken()), nil
}

func (s *Portal) Register(ctx context.Context, _ *session.Session, req models.RegisterRequest) (models.RegisterResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return models.RegisterResponse{}, invalid(err)
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register: %w", err)
	}
	if resp.Message == "" {
		resp.Message = "Registration successful"
	}
	return resp, nil
}

// Login signs the user in and remembers their referral code from the referrer record
func (s *Portal) Login(ctx context.Context, sess *session.Session, req models.LoginRequest) (UserView, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return UserView{}, invalid(err)
	}

	resp, err := s.api.UserLogin(ctx, req)
	if err != nil {
		return UserView{}, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return UserView{}, fmt.Errorf("login: %w", ErrUnauthorized)
	}

	sess.Login(req.Email, resp.Token)
	sess.UserName = resp.Name

	code := resp.ReferralCode
	if referrer, err := s.api.GetReferrer(backend.WithToken(ctx, resp.Token), req.Email); err == nil {
		if referrer.ReferralCode != "" {
			code = referrer.ReferralCode
		}
		if sess.UserName == "" {
			sess.UserName = referrer.Name
		}
	}
	sess.SetCoupon(code)

	return UserView{Name: sess.UserName, Email: sess.UserEmail, CouponCode: sess.CouponCode}, nil
}

func (s *Portal) Logout(_ context.Context, sess *session.Session) error {
	sess.Logout()
	return nil
}

func (s *Portal) Profile(ctx context.Context, sess *session.Session) (models.Profile, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return models.Profile{}, err
	}

	p, err := s.api.UserProfile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile: %w", err)
	}
	return p, nil
}

// referrer loads the signed-in user's own record. A missing record is not an error: the
// pages render with fallbacks.
func (s *Portal) referrer(ctx context.Context, sess *session.Session) (models.Customer, error) {
	c, err := s.api.GetReferrer(ctx, sess.UserEmail)
	if err != nil {
		if backend.StatusCode(err) == http.StatusNotFound {
			return models.Customer{Email: sess.UserEmail, Name: sess.UserName, ReferralCode: sess.CouponCode}, nil
		}
		return models.Customer{}, fmt.Errorf("get referrer: %w", err)
	}
	if c.Name == "" {
		c.Name = sess.UserName
	}
	if c.ReferralCode == "" {
		c.ReferralCode = sess.CouponCode
	}
	return c, nil
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func (s *Portal) Dashboard(ctx context.Context, sess *session.Session) (UserDashboard, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return UserDashboard{}, err
	}

	c, err := s.referrer(ctx, sess)
	if err != nil {
		return UserDashboard{}, err
	}

	return UserDashboard{
		Name:          orDefault(c.Name, defaultUserName),
		Email:         sess.UserEmail,
		ReferralCode:  orDefault(c.ReferralCode, defaultCode),
		ReferralCount: c.ReferralCount,
		Reward:        c.Reward.StringFixed(2),
		Share:         newShareKit(share.RewardInvite(c.Name, c.ReferralCode, s.publicURL)),
	}, nil
}

func (s *Portal) Rewards(ctx context.Context, sess *session.Session) (Rewards, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return Rewards{}, err
	}

	c, err := s.referrer(ctx, sess)
	if err != nil {
		return Rewards{}, err
	}
	all, err := s.api.ListReferrers(ctx)
	if err != nil {
		return Rewards{}, fmt.Errorf("list referrers: %w", err)
	}

	r := Rewards{
		Customer: c.View(),
		Share:    newShareKit(share.RewardInvite(c.Name, c.ReferralCode, s.publicURL)),
	}
	if top := listing.TopReferrer(all); top != nil {
		v := top.View()
		r.TopReferrer = &v
	}
	return r, nil
}

// Friends lists who signed up with the user's code. The first time the count passes
// a new value above one, a celebration email is sent, once per user across logins.
func (s *Portal) Friends(ctx context.Context, sess *session.Session) (Friends, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return Friends{}, err
	}

	f := Friends{
		CouponCode:    orDefault(sess.CouponCode, defaultCode),
		Reward:        "0.00",
		ReferredUsers: []models.ReferredUser{},
		Share:         newShareKit(share.FriendInvite(sess.UserName, sess.CouponCode, s.publicURL)),
	}
	if sess.CouponCode == "" {
		return f, nil
	}

	refs, err := s.api.ReferralsByCoupon(ctx, sess.CouponCode)
	if err != nil {
		if backend.StatusCode(err) == http.StatusNotFound {
			return f, nil
		}
		return Friends{}, fmt.Errorf("referrals by coupon: %w", err)
	}

	f.ReferralCount = refs.ReferralCount
	f.Reward = refs.Reward.StringFixed(2)
	if refs.ReferredUsers != nil {
		f.ReferredUsers = refs.ReferredUsers
	}

	last := max(sess.Celebrated, s.lastCelebrated(sess.UserEmail))
	if refs.ReferralCount > 1 && refs.ReferralCount > last {
		err := s.api.SendCelebration(ctx, models.CelebrationRequest{
			Email: sess.UserEmail,
			Name:  sess.UserName,
			Count: refs.ReferralCount,
		})
		// a failed celebration is retried on the next visit
		if err == nil {
			sess.Celebrated = refs.ReferralCount
			s.markCelebrated(sess.UserEmail, refs.ReferralCount)
			f.Celebrated = true
			s.metrics.RecordEmailSent("celebration")
		}
	}
	return f, nil
}

// newestFirst lists every campaign; inactive ones are shown with their status but cannot be claimed
func newestFirst(list []models.Campaign) []models.Campaign {
	return listing.FilterCampaigns(list, listing.CampaignQuery{
		Status: listing.StatusAll,
		Sort:   listing.SortNewest,
	})
}

func (s *Portal) Offers(ctx context.Context, sess *session.Session) ([]Offer, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.api.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	sorted := newestFirst(campaigns)
	offers := make([]Offer, len(sorted))
	for i, c := range sorted {
		offers[i] = Offer{CampaignView: newCampaignView(c), CouponCode: c.CouponCode()}
	}
	return offers, nil
}

// ClaimOffer emails the offer's details to the signed-in user
func (s *Portal) ClaimOffer(ctx context.Context, sess *session.Session, id string) (models.MessageResponse, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return models.MessageResponse{}, err
	}

	c, err := s.api.GetCampaign(ctx, id)
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("get campaign %s: %w", id, err)
	}
	if !c.IsActive() {
		return models.MessageResponse{}, fmt.Errorf("campaign %s: %w", id, ErrNotFound)
	}

	req := models.EmailRequest{
		Email:   sess.UserEmail,
		Subject: c.Title,
		Text:    c.AboutCampaign,
	}
	if err := s.api.SendUserMail(ctx, req); err != nil {
		return models.MessageResponse{}, fmt.Errorf("send offer: %w", err)
	}
	s.metrics.RecordEmailSent("offer")
	return models.MessageResponse{Message: "Offer sent to " + sess.UserEmail}, nil
}

// PublicCampaigns is the campaign page anyone can see, with a share kit per campaign
func (s *Portal) PublicCampaigns(ctx context.Context) ([]PublicCampaign, error) {
	campaigns, err := s.api.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	pageURL := s.publicURL + "/campaigns"
	sorted := newestFirst(campaigns)
	out := make([]PublicCampaign, len(sorted))
	for i, c := range sorted {
		out[i] = PublicCampaign{
			CampaignView: newCampaignView(c),
			CouponCode:   c.CouponCode(),
			Share:        newShareKit(share.CampaignInvite(c.Title, c.CampaignMessage, pageURL)),
		}
	}
	return out, nil
}
