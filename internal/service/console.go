package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prajwalbharadwajbm/referralhub/internal/assistant"
	"github.com/prajwalbharadwajbm/referralhub/internal/backend"
	"github.com/prajwalbharadwajbm/referralhub/internal/listing"
	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

// DefaultAdminName is shown when the backend cannot tell us who is signed in
const DefaultAdminName = "John Doe"

const recentCampaigns = 5

// ConsoleService is the admin console
type ConsoleService interface {
	Login(ctx context.Context, sess *session.Session, req models.LoginRequest) (AdminView, error)
	GoogleLoginURL() string
	Logout(ctx context.Context, sess *session.Session) error
	AdminName(ctx context.Context, sess *session.Session) (string, error)
	Dashboard(ctx context.Context, sess *session.Session) (Dashboard, error)

	ListCampaigns(ctx context.Context, sess *session.Session, q listing.CampaignQuery) (CampaignList, error)
	GetCampaign(ctx context.Context, sess *session.Session, id string) (CampaignView, error)
	EditForm(ctx context.Context, sess *session.Session, id string) (wizard.EditForm, error)
	UpdateCampaign(ctx context.Context, sess *session.Session, id string, form wizard.EditForm) (CampaignView, error)

	Wizard(ctx context.Context, sess *session.Session) (WizardView, error)
	WizardNext(ctx context.Context, sess *session.Session) (WizardView, error)
	WizardBack(ctx context.Context, sess *session.Session) (WizardView, error)
	WizardApply(ctx context.Context, sess *session.Session, p wizard.Patch) (WizardView, error)
	WizardToggleNote(ctx context.Context, sess *session.Session, note string) (WizardView, error)
	WizardReset(ctx context.Context, sess *session.Session) (WizardView, error)
	WizardSubmit(ctx context.Context, sess *session.Session) (CampaignView, error)

	ListCustomers(ctx context.Context, sess *session.Session, search string) (CustomerList, error)
	RegisterUser(ctx context.Context, sess *session.Session, req models.RegisterRequest) (models.RegisterResponse, error)
	LoginUser(ctx context.Context, sess *session.Session, req models.LoginRequest) (models.LoginResponse, error)

	Assistant(ctx context.Context, sess *session.Session) (AssistantView, error)
	AssistantSend(ctx context.Context, sess *session.Session, text string) (AssistantView, error)

	SendEmail(ctx context.Context, sess *session.Session, req models.EmailRequest) (models.MessageResponse, error)
}

// Console implements ConsoleService against the REST backend
type Console struct {
	api           backend.API
	options       *wizard.Options
	assistant     *assistant.Assistant
	metrics       *metrics.Metrics
	previousCount int
	now           func() time.Time
}

// NewConsoleService creates the admin console. previousCount is the customer count the
// customers page compares against.
func NewConsoleService(api backend.API, options *wizard.Options, asst *assistant.Assistant, m *metrics.Metrics, previousCount int) *Console {
	return &Console{
		api:           api,
		options:       options,
		assistant:     asst,
		metrics:       m,
		previousCount: previousCount,
		now:           time.Now,
	}
}

// authorized checks the admin session and attaches its token to ctx
func (s *Console) authorized(ctx context.Context, sess *session.Session) (context.Context, error) {
	if err := requireAdmin(sess); err != nil {
		return ctx, err
	}
	return backend.WithToken(ctx, sess.BearerToken()), nil
}

func (s *Console) Login(ctx context.Context, sess *session.Session, req models.LoginRequest) (AdminView, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return AdminView{}, invalid(err)
	}

	resp, err := s.api.AdminLogin(ctx, req)
	if err != nil {
		return AdminView{}, fmt.Errorf("admin login: %w", err)
	}
	if resp.Token == "" {
		return AdminView{}, fmt.Errorf("admin login: %w", ErrUnauthorized)
	}

	sess.AdminLogin(resp.Token, req.Email)
	return AdminView{Name: resp.Name, Email: req.Email}, nil
}

func (s *Console) GoogleLoginURL() string {
	return s.api.GoogleAuthURL()
}

func (s *Console) Logout(_ context.Context, sess *session.Session) error {
	sess.Logout()
	return nil
}

// AdminName never fails for a signed-in admin; it falls back to DefaultAdminName
func (s *Console) AdminName(ctx context.Context, sess *session.Session) (string, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return "", err
	}

	resp, err := s.api.AdminName(ctx)
	if err != nil || strings.TrimSpace(resp.Name) == "" {
		return DefaultAdminName, nil
	}
	return resp.Name, nil
}

func (s *Console) Dashboard(ctx context.Context, sess *session.Session) (Dashboard, error) {
	name, err := s.AdminName(ctx, sess)
	if err != nil {
		return Dashboard{}, err
	}
	ctx, _ = s.authorized(ctx, sess)

	customers, err := s.api.ListReferrers(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list referrers: %w", err)
	}
	campaigns, err := s.api.ListCampaigns(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list campaigns: %w", err)
	}

	recent := listing.FilterCampaigns(campaigns, listing.CampaignQuery{Sort: listing.SortNewest})
	if len(recent) > recentCampaigns {
		recent = recent[:recentCampaigns]
	}

	return Dashboard{
		AdminName:       name,
		Overview:        listing.ReferralOverview(customers, campaigns),
		RecentCampaigns: campaignViews(recent),
	}, nil
}

func (s *Console) ListCampaigns(ctx context.Context, sess *session.Session, q listing.CampaignQuery) (CampaignList, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return CampaignList{}, err
	}

	campaigns, err := s.api.ListCampaigns(ctx)
	if err != nil {
		return CampaignList{}, fmt.Errorf("list campaigns: %w", err)
	}

	q.Normalize()
	return CampaignList{
		Query:     q,
		Summary:   listing.CampaignSummary(campaigns),
		Campaigns: campaignViews(listing.FilterCampaigns(campaigns, q)),
	}, nil
}

func (s *Console) GetCampaign(ctx context.Context, sess *session.Session, id string) (CampaignView, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return CampaignView{}, err
	}

	c, err := s.api.GetCampaign(ctx, id)
	if err != nil {
		return CampaignView{}, fmt.Errorf("get campaign %s: %w", id, err)
	}
	return newCampaignView(c), nil
}

func (s *Console) EditForm(ctx context.Context, sess *session.Session, id string) (wizard.EditForm, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return wizard.EditForm{}, err
	}

	c, err := s.api.GetCampaign(ctx, id)
	if err != nil {
		return wizard.EditForm{}, fmt.Errorf("get campaign %s: %w", id, err)
	}
	return wizard.NewEditForm(c), nil
}

func (s *Console) UpdateCampaign(ctx context.Context, sess *session.Session, id string, form wizard.EditForm) (CampaignView, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return CampaignView{}, err
	}

	c, err := form.Campaign(id)
	if err != nil {
		return CampaignView{}, invalid(err)
	}

	updated, err := s.api.UpdateCampaign(ctx, id, c)
	if err != nil {
		return CampaignView{}, fmt.Errorf("update campaign %s: %w", id, err)
	}
	if updated.ID == "" {
		// some backends answer with an acknowledgement instead of the record
		updated = c
	}
	return newCampaignView(updated), nil
}

// draft returns the session's wizard, starting one if needed
func (s *Console) draft(sess *session.Session) *wizard.Wizard {
	if sess.Wizard == nil {
		sess.Wizard = wizard.New(s.now())
	}
	return sess.Wizard
}

func (s *Console) wizardView(w *wizard.Wizard) WizardView {
	return WizardView{
		Step:     w.Step,
		Title:    w.Step.Title(),
		Progress: w.Progress(),
		First:    w.Step == wizard.FirstStep,
		Last:     w.Step == wizard.LastStep,
		Form:     w.Form,
		Options:  s.options,
	}
}

// withDraft runs fn on the admin's draft and renders the result
func (s *Console) withDraft(sess *session.Session, fn func(w *wizard.Wizard) error) (WizardView, error) {
	if err := requireAdmin(sess); err != nil {
		return WizardView{}, err
	}
	w := s.draft(sess)
	if err := fn(w); err != nil {
		return WizardView{}, err
	}
	return s.wizardView(w), nil
}

func (s *Console) Wizard(_ context.Context, sess *session.Session) (WizardView, error) {
	return s.withDraft(sess, func(*wizard.Wizard) error { return nil })
}

func (s *Console) WizardNext(_ context.Context, sess *session.Session) (WizardView, error) {
	return s.withDraft(sess, func(w *wizard.Wizard) error {
		w.Next()
		return nil
	})
}

func (s *Console) WizardBack(_ context.Context, sess *session.Session) (WizardView, error) {
	return s.withDraft(sess, func(w *wizard.Wizard) error {
		w.Back()
		return nil
	})
}

func (s *Console) WizardApply(_ context.Context, sess *session.Session, p wizard.Patch) (WizardView, error) {
	return s.withDraft(sess, func(w *wizard.Wizard) error {
		if err := w.Apply(p); err != nil {
			return invalid(err)
		}
		return nil
	})
}

func (s *Console) WizardToggleNote(_ context.Context, sess *session.Session, note string) (WizardView, error) {
	return s.withDraft(sess, func(w *wizard.Wizard) error {
		note = strings.TrimSpace(note)
		if note == "" {
			return invalid(fmt.Errorf("%w: note", wizard.ErrMissingField))
		}
		w.ToggleNote(note)
		return nil
	})
}

func (s *Console) WizardReset(_ context.Context, sess *session.Session) (WizardView, error) {
	if err := requireAdmin(sess); err != nil {
		return WizardView{}, err
	}
	sess.Wizard = nil
	return s.wizardView(s.draft(sess)), nil
}

// WizardSubmit creates the campaign and discards the draft
func (s *Console) WizardSubmit(ctx context.Context, sess *session.Session) (CampaignView, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return CampaignView{}, err
	}

	payload, err := s.draft(sess).Payload(s.now())
	if err != nil {
		return CampaignView{}, invalid(err)
	}

	created, err := s.api.CreateCampaign(ctx, payload)
	if err != nil {
		return CampaignView{}, fmt.Errorf("create campaign: %w", err)
	}
	if created.ID == "" {
		created = payload
	}

	sess.Wizard = nil
	s.metrics.RecordCampaignCreated()
	return newCampaignView(created), nil
}

func (s *Console) ListCustomers(ctx context.Context, sess *session.Session, search string) (CustomerList, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return CustomerList{}, err
	}

	customers, err := s.api.ListReferrers(ctx)
	if err != nil {
		return CustomerList{}, fmt.Errorf("list referrers: %w", err)
	}

	filtered := listing.FilterCustomers(customers, search)
	views := make([]models.CustomerView, len(filtered))
	for i := range filtered {
		views[i] = filtered[i].View()
	}

	return CustomerList{
		Search:    search,
		Stats:     listing.CustomerStats(filtered, s.previousCount),
		Customers: views,
	}, nil
}

// RegisterUser signs up an end user on their behalf
func (s *Console) RegisterUser(ctx context.Context, sess *session.Session, req models.RegisterRequest) (models.RegisterResponse, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return models.RegisterResponse{}, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return models.RegisterResponse{}, invalid(err)
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register user: %w", err)
	}
	return resp, nil
}

// LoginUser checks an end user's credentials without touching the admin's session
func (s *Console) LoginUser(ctx context.Context, sess *session.Session, req models.LoginRequest) (models.LoginResponse, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return models.LoginResponse{}, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return models.LoginResponse{}, invalid(err)
	}

	resp, err := s.api.UserLogin(ctx, req)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("user login: %w", err)
	}
	return resp, nil
}

func (s *Console) conversation(sess *session.Session) *assistant.Conversation {
	if sess.Conversation == nil {
		sess.Conversation = assistant.NewConversation(s.assistant.Knowledge().Welcome, s.now())
	}
	return sess.Conversation
}

func (s *Console) assistantView(c *assistant.Conversation) AssistantView {
	k := s.assistant.Knowledge()
	return AssistantView{
		Messages:     c.Messages,
		QuickActions: k.QuickActions,
		Metrics:      k.Metrics,
	}
}

func (s *Console) Assistant(_ context.Context, sess *session.Session) (AssistantView, error) {
	if err := requireAdmin(sess); err != nil {
		return AssistantView{}, err
	}
	return s.assistantView(s.conversation(sess)), nil
}

func (s *Console) AssistantSend(_ context.Context, sess *session.Session, text string) (AssistantView, error) {
	if err := requireAdmin(sess); err != nil {
		return AssistantView{}, err
	}

	c := s.conversation(sess)
	reply, err := c.Send(s.assistant, text, s.now())
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			return AssistantView{}, invalid(err)
		}
		return AssistantView{}, err
	}

	s.metrics.RecordAssistantReply(reply.Rule)
	return s.assistantView(c), nil
}

func (s *Console) SendEmail(ctx context.Context, sess *session.Session, req models.EmailRequest) (models.MessageResponse, error) {
	ctx, err := s.authorized(ctx, sess)
	if err != nil {
		return models.MessageResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return models.MessageResponse{}, invalid(err)
	}

	if err := s.api.SendEmail(ctx, req); err != nil {
		return models.MessageResponse{}, fmt.Errorf("send email: %w", err)
	}
	s.metrics.RecordEmailSent("admin")
	return models.MessageResponse{Message: "Email sent successfully"}, nil
}
