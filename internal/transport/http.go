package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	kitendpoint "github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	kittransport "github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"

	"github.com/prajwalbharadwajbm/referralhub/internal/backend"
	"github.com/prajwalbharadwajbm/referralhub/internal/endpoint"
	"github.com/prajwalbharadwajbm/referralhub/internal/listing"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
	"github.com/prajwalbharadwajbm/referralhub/internal/service"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// HealthFunc reports readiness details for /health
type HealthFunc func(ctx context.Context) (details map[string]any, healthy bool)

// NewHTTPHandler creates the HTTP routes for the console and the portal
func NewHTTPHandler(console endpoint.ConsoleEndpoints, portal endpoint.PortalEndpoints, health HealthFunc, logger log.Logger) *mux.Router {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerErrorHandler(kittransport.NewLogErrorHandler(logger)),
	}

	handle := func(e kitendpoint.Endpoint, dec httptransport.DecodeRequestFunc, enc httptransport.EncodeResponseFunc) http.Handler {
		return httptransport.NewServer(e, dec, enc, options...)
	}
	jsonHandler := func(e kitendpoint.Endpoint, dec httptransport.DecodeRequestFunc) http.Handler {
		return handle(e, dec, encodeResponse)
	}

	// keep routes flat: mux subrouters answer 404 instead of 405 on a method mismatch
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/health", healthHandler(health)).Methods("GET")

	r.Handle("/api/campaigns", jsonHandler(portal.PublicCampaigns, decodeEmpty)).Methods("GET")

	r.Handle("/api/admin/login", jsonHandler(console.Login, decodeLogin)).Methods("POST")
	r.Handle("/api/admin/auth/google", handle(console.GoogleLogin, decodeEmpty, encodeRedirect)).Methods("GET")
	r.Handle("/api/admin/logout", jsonHandler(console.Logout, decodeEmpty)).Methods("POST")
	r.Handle("/api/admin/name", jsonHandler(console.AdminName, decodeEmpty)).Methods("GET")
	r.Handle("/api/admin/dashboard", jsonHandler(console.Dashboard, decodeEmpty)).Methods("GET")
	r.Handle("/api/admin/campaigns", jsonHandler(console.ListCampaigns, decodeListCampaigns)).Methods("GET")
	r.Handle("/api/admin/campaigns/{id}", jsonHandler(console.GetCampaign, decodeID)).Methods("GET")
	r.Handle("/api/admin/campaigns/{id}", jsonHandler(console.UpdateCampaign, decodeUpdateCampaign)).Methods("PUT")
	r.Handle("/api/admin/campaigns/{id}/edit", jsonHandler(console.EditForm, decodeID)).Methods("GET")
	r.Handle("/api/admin/wizard", jsonHandler(console.Wizard, decodeEmpty)).Methods("GET")
	r.Handle("/api/admin/wizard", jsonHandler(console.WizardApply, decodeWizardApply)).Methods("PATCH")
	r.Handle("/api/admin/wizard/next", jsonHandler(console.WizardNext, decodeEmpty)).Methods("POST")
	r.Handle("/api/admin/wizard/back", jsonHandler(console.WizardBack, decodeEmpty)).Methods("POST")
	r.Handle("/api/admin/wizard/reset", jsonHandler(console.WizardReset, decodeEmpty)).Methods("POST")
	r.Handle("/api/admin/wizard/submit", handle(console.WizardSubmit, decodeEmpty, encodeCreated)).Methods("POST")
	r.Handle("/api/admin/wizard/notes", jsonHandler(console.WizardToggleNote, decodeToggleNote)).Methods("POST")
	r.Handle("/api/admin/customers", jsonHandler(console.ListCustomers, decodeListCustomers)).Methods("GET")
	r.Handle("/api/admin/users/register", handle(console.RegisterUser, decodeRegister, encodeCreated)).Methods("POST")
	r.Handle("/api/admin/users/login", jsonHandler(console.LoginUser, decodeLogin)).Methods("POST")
	r.Handle("/api/admin/assistant", jsonHandler(console.Assistant, decodeEmpty)).Methods("GET")
	r.Handle("/api/admin/assistant/messages", jsonHandler(console.AssistantSend, decodeAssistantSend)).Methods("POST")
	r.Handle("/api/admin/emails", jsonHandler(console.SendEmail, decodeSendEmail)).Methods("POST")

	r.Handle("/api/user/register", handle(portal.Register, decodeRegister, encodeCreated)).Methods("POST")
	r.Handle("/api/user/login", jsonHandler(portal.Login, decodeLogin)).Methods("POST")
	r.Handle("/api/user/logout", jsonHandler(portal.Logout, decodeEmpty)).Methods("POST")
	r.Handle("/api/user/profile", jsonHandler(portal.Profile, decodeEmpty)).Methods("GET")
	r.Handle("/api/user/dashboard", jsonHandler(portal.Dashboard, decodeEmpty)).Methods("GET")
	r.Handle("/api/user/rewards", jsonHandler(portal.Rewards, decodeEmpty)).Methods("GET")
	r.Handle("/api/user/friends", jsonHandler(portal.Friends, decodeEmpty)).Methods("GET")
	r.Handle("/api/user/offers", jsonHandler(portal.Offers, decodeEmpty)).Methods("GET")
	r.Handle("/api/user/offers/{id}/claim", jsonHandler(portal.ClaimOffer, decodeID)).Methods("POST")

	return r
}

// badRequest marks a body or parameter the server could not read
func badRequest(format string, args ...any) error {
	return &service.ValidationError{Err: fmt.Errorf(format, args...)}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func decodeEmpty(_ context.Context, _ *http.Request) (interface{}, error) {
	return endpoint.Empty{}, nil
}

func decodeID(_ context.Context, r *http.Request) (interface{}, error) {
	id := mux.Vars(r)["id"]
	if strings.TrimSpace(id) == "" {
		return nil, badRequest("missing id")
	}
	return endpoint.IDRequest{ID: id}, nil
}

func decodeLogin(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return endpoint.LoginRequest{Credentials: req}, nil
}

func decodeRegister(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return endpoint.RegisterRequest{Form: req}, nil
}

func decodeListCampaigns(_ context.Context, r *http.Request) (interface{}, error) {
	query := r.URL.Query()

	return endpoint.ListCampaignsRequest{
		Query: listing.CampaignQuery{
			Search: query.Get("search"),
			Status: query.Get("status"),
			Sort:   listing.SortOrder(query.Get("sort")),
		},
	}, nil
}

func decodeUpdateCampaign(ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := decodeID(ctx, r)
	if err != nil {
		return nil, err
	}
	var form wizard.EditForm
	if err := decodeBody(r, &form); err != nil {
		return nil, err
	}
	return endpoint.UpdateCampaignRequest{ID: id.(endpoint.IDRequest).ID, Form: form}, nil
}

func decodeWizardApply(_ context.Context, r *http.Request) (interface{}, error) {
	var patch wizard.Patch
	if err := decodeBody(r, &patch); err != nil {
		return nil, err
	}
	return endpoint.WizardApplyRequest{Patch: patch}, nil
}

func decodeToggleNote(_ context.Context, r *http.Request) (interface{}, error) {
	var req endpoint.ToggleNoteRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeListCustomers(_ context.Context, r *http.Request) (interface{}, error) {
	return endpoint.ListCustomersRequest{Search: r.URL.Query().Get("search")}, nil
}

func decodeAssistantSend(_ context.Context, r *http.Request) (interface{}, error) {
	var req endpoint.AssistantSendRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeSendEmail(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.EmailRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return endpoint.SendEmailRequest{Email: req}, nil
}

func encodeWithStatus(ctx context.Context, w http.ResponseWriter, response interface{}, status int) error {
	resp := response.(endpoint.Response)

	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(resp.Body)
}

// encodeResponse encodes an endpoint.Response as JSON
func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	return encodeWithStatus(ctx, w, response, http.StatusOK)
}

// encodeCreated is encodeResponse for endpoints that create something
func encodeCreated(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	return encodeWithStatus(ctx, w, response, http.StatusCreated)
}

// encodeRedirect sends the browser to the URL in an endpoint.Redirect body
func encodeRedirect(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.Response)
	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}

	redirect, ok := resp.Body.(endpoint.Redirect)
	if !ok || redirect.URL == "" {
		encodeError(ctx, errors.New("missing redirect target"), w)
		return nil
	}
	w.Header().Set("Location", redirect.URL)
	w.WriteHeader(http.StatusFound)
	return nil
}

// statusFor maps an error to the HTTP status and the message shown to the caller
func statusFor(err error) (int, string) {
	var be *backend.Error

	switch {
	case service.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, service.ErrUnauthorized.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, service.ErrNotFound.Error()
	case errors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests, "too many requests, try again shortly"
	case errors.As(err, &be):
		if be.StatusCode >= 400 && be.StatusCode < 500 {
			return be.StatusCode, be.Message
		}
		return http.StatusBadGateway, "backend error"
	case errors.Is(err, backend.ErrUnavailable):
		return http.StatusBadGateway, backend.ErrUnavailable.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// encodeError encodes error to HTTP response
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	status, msg := statusFor(err)
	writeError(w, status, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.NewErrorResponse(msg))
}

// healthHandler handles health check requests
func healthHandler(health HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"status":  "healthy",
			"service": "referralhub",
		}

		status := http.StatusOK
		if health != nil {
			details, healthy := health(r.Context())
			for k, v := range details {
				response[k] = v
			}
			if !healthy {
				response["status"] = "unhealthy"
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}
}
