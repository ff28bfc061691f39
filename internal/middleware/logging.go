package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	reqcontext "github.com/prajwalbharadwajbm/referralhub/internal/context"
)

// LoggingMiddleware logs one line per endpoint call
func LoggingMiddleware(logger log.Logger) func(method string) endpoint.Middleware {
	return func(method string) endpoint.Middleware {
		return func(next endpoint.Endpoint) endpoint.Endpoint {
			return func(ctx context.Context, request interface{}) (response interface{}, err error) {
				defer func(begin time.Time) {
					info := reqcontext.GetRequestInfo(ctx)
					logFields := []interface{}{
						"method", method,
						"request_id", info.ID,
						"took", time.Since(begin),
					}

					if info.SessionID != "" {
						logFields = append(logFields, "session_id", info.SessionID)
					}
					if info.RemoteAddr != "" {
						logFields = append(logFields, "remote_addr", info.RemoteAddr)
					}
					if !info.StartTime.IsZero() {
						logFields = append(logFields, "elapsed", time.Since(info.StartTime))
					}

					callErr := failure(response, err)
					if callErr != nil {
						logFields = append(logFields, "error", callErr.Error(), "success", false)
						level.Warn(logger).Log(logFields...)
						return
					}
					logFields = append(logFields, "success", true)
					level.Info(logger).Log(logFields...)
				}(time.Now())

				return next(ctx, request)
			}
		}
	}
}

// failure returns the transport error or the business error carried by the response
func failure(response interface{}, err error) error {
	if err != nil {
		return err
	}
	if f, ok := response.(endpoint.Failer); ok {
		return f.Failed()
	}
	return nil
}
