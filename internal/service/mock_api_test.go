package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// MockAPI is a mock implementation of backend.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) AdminName(ctx context.Context) (models.AdminName, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.AdminName), args.Error(1)
}

func (m *MockAPI) AdminLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.LoginResponse), args.Error(1)
}

func (m *MockAPI) GoogleAuthURL() string {
	return m.Called().String(0)
}

func (m *MockAPI) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.RegisterResponse), args.Error(1)
}

func (m *MockAPI) UserLogin(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.LoginResponse), args.Error(1)
}

func (m *MockAPI) UserProfile(ctx context.Context) (models.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *MockAPI) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Campaign), args.Error(1)
}

func (m *MockAPI) GetCampaign(ctx context.Context, id string) (models.Campaign, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Campaign), args.Error(1)
}

func (m *MockAPI) CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Campaign), args.Error(1)
}

func (m *MockAPI) UpdateCampaign(ctx context.Context, id string, c models.Campaign) (models.Campaign, error) {
	args := m.Called(ctx, id, c)
	return args.Get(0).(models.Campaign), args.Error(1)
}

func (m *MockAPI) ListReferrers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockAPI) GetReferrer(ctx context.Context, email string) (models.Customer, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.Customer), args.Error(1)
}

func (m *MockAPI) ReferralsByCoupon(ctx context.Context, code string) (models.CouponReferrals, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.CouponReferrals), args.Error(1)
}

func (m *MockAPI) SendCelebration(ctx context.Context, req models.CelebrationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAPI) SendEmail(ctx context.Context, req models.EmailRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAPI) SendUserMail(ctx context.Context, req models.EmailRequest) error {
	return m.Called(ctx, req).Error(0)
}
