package endpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
	"github.com/prajwalbharadwajbm/referralhub/internal/service"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
)

// PortalEndpoints holds all endpoints for the end-user portal
type PortalEndpoints struct {
	Register        endpoint.Endpoint
	Login           endpoint.Endpoint
	Logout          endpoint.Endpoint
	Profile         endpoint.Endpoint
	Dashboard       endpoint.Endpoint
	Rewards         endpoint.Endpoint
	Friends         endpoint.Endpoint
	Offers          endpoint.Endpoint
	ClaimOffer      endpoint.Endpoint
	PublicCampaigns endpoint.Endpoint
}

// MakePortalEndpoints creates endpoints for the portal service, each wrapped by mws in order
func MakePortalEndpoints(s service.PortalService, mws ...Middleware) PortalEndpoints {
	return PortalEndpoints{
		Register:        decorate("Register", makeRegisterEndpoint(s), mws),
		Login:           decorate("UserLogin", makeUserLoginEndpoint(s), mws),
		Logout:          decorate("UserLogout", makeUserLogoutEndpoint(s), mws),
		Profile:         decorate("Profile", makeUserEndpoint(s.Profile), mws),
		Dashboard:       decorate("UserDashboard", makeUserEndpoint(s.Dashboard), mws),
		Rewards:         decorate("Rewards", makeUserEndpoint(s.Rewards), mws),
		Friends:         decorate("Friends", makeUserEndpoint(s.Friends), mws),
		Offers:          decorate("Offers", makeUserEndpoint(s.Offers), mws),
		ClaimOffer:      decorate("ClaimOffer", makeClaimOfferEndpoint(s), mws),
		PublicCampaigns: decorate("PublicCampaigns", makePublicCampaignsEndpoint(s), mws),
	}
}

func makeRegisterEndpoint(s service.PortalService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(RegisterRequest)
		return sessionCall(ctx, func(sess *session.Session) (models.RegisterResponse, error) {
			return s.Register(ctx, sess, req.Form)
		})
	}
}

func makeUserLoginEndpoint(s service.PortalService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(LoginRequest)
		return sessionCall(ctx, func(sess *session.Session) (service.UserView, error) {
			return s.Login(ctx, sess, req.Credentials)
		})
	}
}

func makeUserLogoutEndpoint(s service.PortalService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (models.MessageResponse, error) {
			return models.MessageResponse{Message: "Logged out"}, s.Logout(ctx, sess)
		})
	}
}

// makeUserEndpoint serves the portal pages that only need the session
func makeUserEndpoint[T any](fn func(context.Context, *session.Session) (T, error)) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return sessionCall(ctx, func(sess *session.Session) (T, error) {
			return fn(ctx, sess)
		})
	}
}

func makeClaimOfferEndpoint(s service.PortalService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(IDRequest)
		return sessionCall(ctx, func(sess *session.Session) (models.MessageResponse, error) {
			return s.ClaimOffer(ctx, sess, req.ID)
		})
	}
}

func makePublicCampaignsEndpoint(s service.PortalService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		campaigns, err := s.PublicCampaigns(ctx)
		if err != nil {
			return Response{Err: err}, nil
		}
		return Response{Body: campaigns}, nil
	}
}
