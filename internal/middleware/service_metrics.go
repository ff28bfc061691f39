package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"

	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
)

// InstrumentingMiddleware records call counts and latency per endpoint
func InstrumentingMiddleware(m *metrics.Metrics) func(method string) endpoint.Middleware {
	return func(method string) endpoint.Middleware {
		return func(next endpoint.Endpoint) endpoint.Endpoint {
			return func(ctx context.Context, request interface{}) (response interface{}, err error) {
				defer func(begin time.Time) {
					m.RecordEndpoint(method, failure(response, err) == nil, time.Since(begin).Seconds())
				}(time.Now())

				return next(ctx, request)
			}
		}
	}
}
