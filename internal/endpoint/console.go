package endpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/prajwalbharadwajbm/referralhub/internal/listing"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
	"github.com/prajwalbharadwajbm/referralhub/internal/service"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

// ConsoleEndpoints holds all endpoints for the admin console
type ConsoleEndpoints struct {
	Login            endpoint.Endpoint
	GoogleLogin      endpoint.Endpoint
	Logout           endpoint.Endpoint
	AdminName        endpoint.Endpoint
	Dashboard        endpoint.Endpoint
	ListCampaigns    endpoint.Endpoint
	GetCampaign      endpoint.Endpoint
	EditForm         endpoint.Endpoint
	UpdateCampaign   endpoint.Endpoint
	Wizard           endpoint.Endpoint
	WizardNext       endpoint.Endpoint
	WizardBack       endpoint.Endpoint
	WizardApply      endpoint.Endpoint
	WizardToggleNote endpoint.Endpoint
	WizardReset      endpoint.Endpoint
	WizardSubmit     endpoint.Endpoint
	ListCustomers    endpoint.Endpoint
	RegisterUser     endpoint.Endpoint
	LoginUser        endpoint.Endpoint
	Assistant        endpoint.Endpoint
	AssistantSend    endpoint.Endpoint
	SendEmail        endpoint.Endpoint
}

// LoginRequest carries admin or user credentials
type LoginRequest struct {
	Credentials models.LoginRequest
}

// RegisterRequest carries a sign-up form
type RegisterRequest struct {
	Form models.RegisterRequest
}

// ListCampaignsRequest is the campaign list query
type ListCampaignsRequest struct {
	Query listing.CampaignQuery
}

// UpdateCampaignRequest is the submitted edit form for campaign ID
type UpdateCampaignRequest struct {
	ID   string
	Form wizard.EditForm
}

// WizardApplyRequest is a partial update of the wizard form
type WizardApplyRequest struct {
	Patch wizard.Patch
}

// ToggleNoteRequest adds or removes one additional note
type ToggleNoteRequest struct {
	Note string `json:"note"`
}

// ListCustomersRequest is the customer search
type ListCustomersRequest struct {
	Search string
}

// AssistantSendRequest is a chat message to the assistant
type AssistantSendRequest struct {
	Text string `json:"text"`
}

// SendEmailRequest is an email the admin sends
type SendEmailRequest struct {
	Email models.EmailRequest
}

// MakeConsoleEndpoints creates endpoints for the console service, each wrapped by mws in order
func MakeConsoleEndpoints(s service.ConsoleService, mws ...Middleware) ConsoleEndpoints {
	return ConsoleEndpoints{
		Login:            decorate("AdminLogin", makeAdminLoginEndpoint(s), mws),
		GoogleLogin:      decorate("GoogleLogin", makeGoogleLoginEndpoint(s), mws),
		Logout:           decorate("AdminLogout", makeAdminLogoutEndpoint(s), mws),
		AdminName:        decorate("AdminName", makeAdminNameEndpoint(s), mws),
		Dashboard:        decorate("Dashboard", makeDashboardEndpoint(s), mws),
		ListCampaigns:    decorate("ListCampaigns", makeListCampaignsEndpoint(s), mws),
		GetCampaign:      decorate("GetCampaign", makeGetCampaignEndpoint(s), mws),
		EditForm:         decorate("EditForm", makeEditFormEndpoint(s), mws),
		UpdateCampaign:   decorate("UpdateCampaign", makeUpdateCampaignEndpoint(s), mws),
		Wizard:           decorate("Wizard", makeWizardEndpoint(s.Wizard), mws),
		WizardNext:       decorate("WizardNext", makeWizardEndpoint(s.WizardNext), mws),
		WizardBack:       decorate("WizardBack", makeWizardEndpoint(s.WizardBack), mws),
		WizardApply:      decorate("WizardApply", makeWizardApplyEndpoint(s), mws),
		WizardToggleNote: decorate("WizardToggleNote", makeWizardToggleNoteEndpoint(s), mws),
		WizardReset:      decorate("WizardReset", makeWizardEndpoint(s.WizardReset), mws),
		WizardSubmit:     decorate("WizardSubmit", makeWizardSubmitEndpoint(s), mws),
		ListCustomers:    decorate("ListCustomers", makeListCustomersEndpoint(s), mws),
		RegisterUser:     decorate("RegisterUser", makeRegisterUserEndpoint(s), mws),
		LoginUser:        decorate("LoginUser", makeLoginUserEndpoint(s), mws),
		Assistant:        decorate("Assistant", makeAssistantEndpoint(s), mws),
		AssistantSend:    decorate("AssistantSend", makeAssistantSendEndpoint(s), mws),
		SendEmail:        decorate("SendEmail", makeSendEmailEndpoint(s), mws),
	}
}

func makeAdminLoginEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(LoginRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.AdminView, error) {
			return s.Login(ctx, sess, req.Credentials)
		})
	}
}

func makeGoogleLoginEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return Response{Body: Redirect{URL: s.GoogleLoginURL()}}, nil
	}
}

func makeAdminLogoutEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (models.MessageResponse, error) {
			return models.MessageResponse{Message: "Logged out"}, s.Logout(ctx, sess)
		})
	}
}

func makeAdminNameEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (models.AdminName, error) {
			name, err := s.AdminName(ctx, sess)
			return models.AdminName{Name: name}, err
		})
	}
}

func makeDashboardEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (service.Dashboard, error) {
			return s.Dashboard(ctx, sess)
		})
	}
}

func makeListCampaignsEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(ListCampaignsRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.CampaignList, error) {
			return s.ListCampaigns(ctx, sess, req.Query)
		})
	}
}

func makeGetCampaignEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(IDRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.CampaignView, error) {
			return s.GetCampaign(ctx, sess, req.ID)
		})
	}
}

func makeEditFormEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(IDRequest)
		return sessionCall(ctx, func(sess *session.Session) (wizard.EditForm, error) {
			return s.EditForm(ctx, sess, req.ID)
		})
	}
}

func makeUpdateCampaignEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(UpdateCampaignRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.CampaignView, error) {
			return s.UpdateCampaign(ctx, sess, req.ID, req.Form)
		})
	}
}

// makeWizardEndpoint serves the wizard methods that take no input
func makeWizardEndpoint(fn func(context.Context, *session.Session) (service.WizardView, error)) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (service.WizardView, error) {
			return fn(ctx, sess)
		})
	}
}

func makeWizardApplyEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(WizardApplyRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.WizardView, error) {
			return s.WizardApply(ctx, sess, req.Patch)
		})
	}
}

func makeWizardToggleNoteEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(ToggleNoteRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.WizardView, error) {
			return s.WizardToggleNote(ctx, sess, req.Note)
		})
	}
}

func makeWizardSubmitEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (service.CampaignView, error) {
			return s.WizardSubmit(ctx, sess)
		})
	}
}

func makeListCustomersEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(ListCustomersRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.CustomerList, error) {
			return s.ListCustomers(ctx, sess, req.Search)
		})
	}
}

func makeRegisterUserEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(RegisterRequest)
		return sessionCall(ctx, func(sess *session.Session) (models.RegisterResponse, error) {
			return s.RegisterUser(ctx, sess, req.Form)
		})
	}
}

func makeLoginUserEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(LoginRequest)
		return sessionCall(ctx, func(sess *session.Session) (models.LoginResponse, error) {
			return s.LoginUser(ctx, sess, req.Credentials)
		})
	}
}

func makeAssistantEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (service.AssistantView, error) {
			return s.Assistant(ctx, sess)
		})
	}
}

func makeAssistantSendEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(AssistantSendRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.AssistantView, error) {
			return s.AssistantSend(ctx, sess, req.Text)
		})
	}
}

func makeSendEmailEndpoint(s service.ConsoleService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(SendEmailRequest)
		return sessionCall(ctx, func(sess *session.Session) (models.MessageResponse, error) {
			return s.SendEmail(ctx, sess, req.Email)
		})
	}
}
