// Package endpoint adapts the console and portal services to go-kit endpoints.
package endpoint

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"

	"github.com/prajwalbharadwajbm/referralhub/internal/session"
)

// ErrNoSession means the session middleware did not run for the request
var ErrNoSession = errors.New("no session in request context")

// Middleware builds the endpoint middleware for one named method
type Middleware func(method string) endpoint.Middleware

// Response is what every endpoint returns: a body to render, or the business error
type Response struct {
	Body any
	Err  error
}

// Failed implements the endpoint.Failer interface
func (r Response) Failed() error {
	return r.Err
}

// Redirect is the body of endpoints that send the browser elsewhere
type Redirect struct {
	URL string
}

// Empty is the request of endpoints that take no input
type Empty struct{}

// IDRequest names one item
type IDRequest struct {
	ID string
}

func decorate(method string, e endpoint.Endpoint, mws []Middleware) endpoint.Endpoint {
	for _, mw := range mws {
		e = mw(method)(e)
	}
	return e
}

// sessionCall runs fn with the request's session and wraps its result in a Response
func sessionCall[T any](ctx context.Context, fn func(sess *session.Session) (T, error)) (any, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return Response{Err: ErrNoSession}, nil
	}
	body, err := fn(sess)
	if err != nil {
		return Response{Err: err}, nil
	}
	return Response{Body: body}, nil
}
