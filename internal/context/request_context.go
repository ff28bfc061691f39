package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RequestContextKey represents keys used in request context
type RequestContextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey RequestContextKey = "request_id"
	// StartTimeKey is the context key for request start time
	StartTimeKey RequestContextKey = "start_time"
	// RemoteAddrKey is the context key for remote address
	RemoteAddrKey RequestContextKey = "remote_addr"
	// SessionIDKey is the context key for the console/portal session ID
	SessionIDKey RequestContextKey = "session_id"
)

// RequestInfo holds information about the current request
type RequestInfo struct {
	ID         string    `json:"request_id"`
	SessionID  string    `json:"session_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithStartTime adds a start time to the context
func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, StartTimeKey, startTime)
}

// GetStartTime retrieves the start time from context
func GetStartTime(ctx context.Context) time.Time {
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}

// WithRemoteAddr adds remote address to the context
func WithRemoteAddr(ctx context.Context, remoteAddr string) context.Context {
	return context.WithValue(ctx, RemoteAddrKey, remoteAddr)
}

// GetRemoteAddr retrieves the remote address from context
func GetRemoteAddr(ctx context.Context) string {
	if remoteAddr, ok := ctx.Value(RemoteAddrKey).(string); ok {
		return remoteAddr
	}
	return ""
}

// WithSessionID records the session serving this request, for log correlation only
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetSessionID retrieves the session ID from context
func GetSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}

// NewRequestContext creates a request context with a fresh ID, or the upstream one when given
func NewRequestContext(ctx context.Context, upstreamID, remoteAddr string) context.Context {
	requestID := upstreamID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = WithRequestID(ctx, requestID)
	ctx = WithStartTime(ctx, time.Now())
	ctx = WithRemoteAddr(ctx, remoteAddr)

	return ctx
}

// GetRequestInfo extracts all request information from context
func GetRequestInfo(ctx context.Context) RequestInfo {
	return RequestInfo{
		ID:         GetRequestID(ctx),
		SessionID:  GetSessionID(ctx),
		StartTime:  GetStartTime(ctx),
		RemoteAddr: GetRemoteAddr(ctx),
	}
}
