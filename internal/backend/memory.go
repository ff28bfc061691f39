package backend

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// referralReward is credited to a referrer for each friend who registers with their code
var referralReward = decimal.NewFromInt(10)

// MemoryAdmin is the admin account a MemoryAPI accepts
type MemoryAdmin struct {
	Name     string
	Email    string
	Password string
}

// SentMail is an email a MemoryAPI was asked to send
type SentMail struct {
	Kind        string
	Email       models.EmailRequest
	Celebration models.CelebrationRequest
}

type memoryUser struct {
	customer models.Customer
	password string
}

func (u *memoryUser) snapshot() models.Customer {
	c := u.customer
	c.ReferredUsers = slices.Clone(c.ReferredUsers)
	return c
}

// MemoryAPI implements API in process memory, for local runs and tests
type MemoryAPI struct {
	mu        sync.RWMutex
	admin     MemoryAdmin
	campaigns []models.Campaign
	users     []*memoryUser
	tokens    map[string]string
	outbox    []SentMail
}

// NewMemoryAPI creates a memory backend with sample campaigns and referrers
func NewMemoryAPI(admin MemoryAdmin) *MemoryAPI {
	now := time.Now().UTC().Truncate(24 * time.Hour)

	api := &MemoryAPI{
		admin:  admin,
		tokens: make(map[string]string),
		campaigns: []models.Campaign{
			{
				ID:              "summer-referral",
				Title:           "Summer Referral",
				AboutCampaign:   "Invite friends over the summer and both of you save.",
				StartDate:       models.NewDate(now.AddDate(0, -1, 0)),
				EndDate:         models.NewDate(now.AddDate(0, 2, 0)),
				Status:          models.StatusActive,
				RewardType:      models.RewardInstant,
				RewardFormat:    models.FormatDiscount,
				DiscountValue:   decimal.NewFromInt(20),
				CampaignMessage: "Get 20% off your first order with code SUMMER20",
				AdditionalNotes: []string{"Valid for first-time customers only"},
			},
			{
				ID:              "winter-cashback",
				Title:           "Winter Cashback",
				AboutCampaign:   "Earn cash for every friend who converts.",
				StartDate:       models.NewDate(now.AddDate(0, -6, 0)),
				Status:          models.StatusInactive,
				RewardType:      models.RewardConversion,
				RewardFormat:    models.FormatCash,
				DiscountValue:   decimal.NewFromInt(25),
				CampaignMessage: "Share the love and earn $25 with code WINTER25",
				AdditionalNotes: []string{},
			},
		},
	}

	api.users = []*memoryUser{
		{customer: models.Customer{Name: "Asha Rao", Email: "asha@example.com", ReferralCode: "a1b2c3d4", ReferralCount: 3, Reward: decimal.NewFromInt(30), Status: models.CustomerActive}},
		{customer: models.Customer{Name: "Ben Ortiz", Email: "ben@example.com", ReferralCode: "e5f6a7b8", ReferralCount: 1, Reward: decimal.NewFromInt(10), Status: models.CustomerActive}},
		{customer: models.Customer{Name: "Chen Li", Email: "chen@example.com", ReferralCode: "c9d0e1f2", Status: models.CustomerInactive}},
	}

	return api
}

func notFound(what string) error {
	return &Error{StatusCode: http.StatusNotFound, Message: what + " not found"}
}

func (m *MemoryAPI) findUser(email string) *memoryUser {
	for _, u := range m.users {
		if strings.EqualFold(u.customer.Email, email) {
			return u
		}
	}
	return nil
}

func (m *MemoryAPI) findByCode(code string) *memoryUser {
	for _, u := range m.users {
		if u.customer.ReferralCode == code {
			return u
		}
	}
	return nil
}

func (m *MemoryAPI) AdminName(ctx context.Context) (models.AdminName, error) {
	return models.AdminName{Name: m.admin.Name}, nil
}

func (m *MemoryAPI) AdminLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	if m.admin.Email == "" || !strings.EqualFold(req.Email, m.admin.Email) || req.Password != m.admin.Password {
		return models.LoginResponse{}, &Error{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	token := "admin-" + uuid.New().String()
	m.tokens[token] = m.admin.Email
	return models.LoginResponse{Token: token, Name: m.admin.Name, Email: m.admin.Email}, nil
}

func (m *MemoryAPI) GoogleAuthURL() string {
	return "/auth/google"
}

func (m *MemoryAPI) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findUser(req.Email) != nil {
		return models.RegisterResponse{}, &Error{StatusCode: http.StatusConflict, Message: "User already exists"}
	}

	user := &memoryUser{
		customer: models.Customer{
			Name:         req.Name,
			Email:        req.Email,
			ReferralCode: strings.ReplaceAll(uuid.New().String(), "-", "")[:8],
			Status:       models.CustomerActive,
		},
		password: req.Password,
	}

	if req.ReferralCode != "" {
		if referrer := m.findByCode(req.ReferralCode); referrer != nil {
			referrer.customer.ReferralCount++
			referrer.customer.Reward = referrer.customer.Reward.Add(referralReward)
			referrer.customer.ReferredUsers = append(referrer.customer.ReferredUsers, models.ReferredUser{
				Name:      req.Name,
				Email:     req.Email,
				CreatedAt: models.NewDate(time.Now().UTC()),
			})
			user.customer.ReferredBy = referrer.customer.Email
		}
	}

	m.users = append(m.users, user)
	return models.RegisterResponse{Message: "User registered successfully", ReferralCode: user.customer.ReferralCode}, nil
}

func (m *MemoryAPI) UserLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.findUser(req.Email)
	if user == nil || user.password == "" || user.password != req.Password {
		return models.LoginResponse{}, &Error{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}

	token := "user-" + uuid.New().String()
	m.tokens[token] = user.customer.Email
	return models.LoginResponse{
		Token:        token,
		Name:         user.customer.Name,
		Email:        user.customer.Email,
		ReferralCode: user.customer.ReferralCode,
	}, nil
}

func (m *MemoryAPI) UserProfile(ctx context.Context) (models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email, ok := m.tokens[TokenFromContext(ctx)]
	if !ok {
		return models.Profile{}, &Error{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	}
	user := m.findUser(email)
	if user == nil {
		return models.Profile{}, notFound("user")
	}
	return models.Profile{Name: user.customer.Name, Email: user.customer.Email, ReferralCode: user.customer.ReferralCode}, nil
}

func (m *MemoryAPI) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.campaigns), nil
}

func (m *MemoryAPI) GetCampaign(ctx context.Context, id string) (models.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.campaigns, func(c models.Campaign) bool { return c.ID == id })
	if i < 0 {
		return models.Campaign{}, notFound("campaign")
	}
	return m.campaigns[i], nil
}

func (m *MemoryAPI) CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.New().String()
	m.campaigns = append(m.campaigns, c)
	return c, nil
}

func (m *MemoryAPI) UpdateCampaign(ctx context.Context, id string, c models.Campaign) (models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.campaigns, func(existing models.Campaign) bool { return existing.ID == id })
	if i < 0 {
		return models.Campaign{}, notFound("campaign")
	}
	c.ID = id
	m.campaigns[i] = c
	return c, nil
}

func (m *MemoryAPI) ListReferrers(ctx context.Context) ([]models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Customer, len(m.users))
	for i, u := range m.users {
		out[i] = u.snapshot()
	}
	return out, nil
}

func (m *MemoryAPI) GetReferrer(ctx context.Context, email string) (models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user := m.findUser(email)
	if user == nil {
		return models.Customer{}, notFound("user")
	}
	return user.snapshot(), nil
}

func (m *MemoryAPI) ReferralsByCoupon(ctx context.Context, code string) (models.CouponReferrals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user := m.findByCode(code)
	if user == nil {
		return models.CouponReferrals{}, notFound("referral code")
	}
	return models.CouponReferrals{
		ReferralCount: user.customer.ReferralCount,
		Reward:        user.customer.Reward,
		ReferredUsers: slices.Clone(user.customer.ReferredUsers),
	}, nil
}

func (m *MemoryAPI) SendCelebration(ctx context.Context, req models.CelebrationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outbox = append(m.outbox, SentMail{Kind: "celebration", Celebration: req})
	return nil
}

func (m *MemoryAPI) SendEmail(ctx context.Context, req models.EmailRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outbox = append(m.outbox, SentMail{Kind: "admin", Email: req})
	return nil
}

func (m *MemoryAPI) SendUserMail(ctx context.Context, req models.EmailRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outbox = append(m.outbox, SentMail{Kind: "user", Email: req})
	return nil
}

// Outbox returns the emails sent so far
func (m *MemoryAPI) Outbox() []SentMail {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.outbox)
}
