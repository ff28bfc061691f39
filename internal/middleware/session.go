package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	reqcontext "github.com/prajwalbharadwajbm/referralhub/internal/context"
	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
)

// SessionMiddleware loads the caller's session from the store before the handler runs and
// persists it before the response headers are sent.
type SessionMiddleware struct {
	store   session.Store
	cookie  http.Cookie
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  log.Logger
	now     func() time.Time
}

// NewSessionMiddleware creates a session middleware. cookie is a template; its Value,
// Expires and MaxAge are set per response.
func NewSessionMiddleware(store session.Store, cookie http.Cookie, ttl time.Duration, m *metrics.Metrics, logger log.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		store:   store,
		cookie:  cookie,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Middleware returns the HTTP middleware function
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)

		ctx := session.NewContext(r.Context(), sess)
		ctx = reqcontext.WithSessionID(ctx, sess.ID)
		r = r.WithContext(ctx)

		sw := &sessionWriter{ResponseWriter: w}
		sw.commit = func() { m.commit(w, r, sess) }

		next.ServeHTTP(sw, r)
		sw.flush()
	})
}

func (m *SessionMiddleware) load(r *http.Request) *session.Session {
	c, err := r.Cookie(m.cookie.Name)
	if err != nil || uuid.Validate(c.Value) != nil {
		return session.New(m.now())
	}

	sess, err := m.store.Get(r.Context(), c.Value)
	switch {
	case err == nil:
		m.metrics.RecordSessionOperation("get", "hit")
		return sess
	case errors.Is(err, session.ErrNotFound):
		m.metrics.RecordSessionOperation("get", "miss")
	default:
		m.metrics.RecordSessionOperation("get", "error")
		level.Warn(m.logger).Log("msg", "failed to load session", "request_id", reqcontext.GetRequestID(r.Context()), "err", err)
	}
	return session.New(m.now())
}

func (m *SessionMiddleware) commit(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	ctx := r.Context()

	if old := sess.RotatedFrom(); old != "" {
		m.delete(r, old)
	}

	switch {
	case sess.Ended():
		if !sess.IsNew() && sess.RotatedFrom() == "" {
			m.delete(r, sess.ID)
		}
		expired := m.cookie
		expired.MaxAge = -1
		http.SetCookie(w, &expired)

	case sess.IsNew() && sess.IsEmpty():
		// nothing to remember about an anonymous visitor

	default:
		now := m.now()
		sess.Touch(now)
		if err := m.store.Save(ctx, sess); err != nil {
			m.metrics.RecordSessionOperation("save", "error")
			level.Error(m.logger).Log("msg", "failed to save session", "request_id", reqcontext.GetRequestID(ctx), "err", err)
			return
		}
		m.metrics.RecordSessionOperation("save", "ok")

		c := m.cookie
		c.Value = sess.ID
		c.Expires = now.Add(m.ttl)
		c.MaxAge = int(m.ttl.Seconds())
		http.SetCookie(w, &c)
	}
}

func (m *SessionMiddleware) delete(r *http.Request, id string) {
	if err := m.store.Delete(r.Context(), id); err != nil {
		m.metrics.RecordSessionOperation("delete", "error")
		level.Warn(m.logger).Log("msg", "failed to delete session", "request_id", reqcontext.GetRequestID(r.Context()), "err", err)
		return
	}
	m.metrics.RecordSessionOperation("delete", "ok")
}

// sessionWriter runs commit once, right before the first byte of the response
type sessionWriter struct {
	http.ResponseWriter
	commit func()
	once   sync.Once
}

func (sw *sessionWriter) flush() {
	sw.once.Do(sw.commit)
}

func (sw *sessionWriter) WriteHeader(code int) {
	sw.flush()
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	sw.flush()
	return sw.ResponseWriter.Write(b)
}
