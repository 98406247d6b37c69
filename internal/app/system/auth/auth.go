package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmagnetico/arsenal/internal/domain/models"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	userIDKey   = "user_id"
	userNameKey = "user_name"
	userRoleKey = "user_role"
	joinedAtKey = "joined_at"
	powerKey    = "magnetic_power"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager wraps the cookie store and the session name so
// handlers never touch gorilla directly.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds the cookie-backed session manager. The
// `secure` flag controls whether cookies are marked Secure and which
// SameSite mode is used: Secure+None for HTTPS deployments, Lax for
// local dev over http://localhost.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// GetSession returns the request's session, a fresh one when the
// cookie is absent or undecodable. The error is informational; the
// returned session is always usable.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// Store exposes the underlying cookie store, mainly so logout can
// mirror its options onto the deletion cookie.
func (m *SessionManager) Store() *sessions.CookieStore {
	return m.store
}

// SignIn writes the user's identity into the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u models.User) error {
	sess, err := m.GetSession(r)
	if err != nil {
		m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userRoleKey] = u.Role
	sess.Values[joinedAtKey] = u.JoinedAt
	sess.Values[powerKey] = u.MagneticPower
	return sess.Save(r, w)
}

// CurrentUser returns the signed-in user injected by LoadSessionUser.
func CurrentUser(r *http.Request) (models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(models.User)
	return u, ok
}

// WithTestUser injects a user directly into the request context.
// Handler tests use this to bypass the cookie round trip.
func WithTestUser(r *http.Request, u models.User) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser injects the user into context if they are signed in.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.GetSession(r)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := models.User{
				ID:   getString(sess, userIDKey),
				Name: getString(sess, userNameKey),
				Role: getString(sess, userRoleKey),
			}
			if v, ok := sess.Values[joinedAtKey].(int64); ok {
				u.JoinedAt = v
			}
			if v, ok := sess.Values[powerKey].(int); ok {
				u.MagneticPower = v
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser). Browsers get a 303 to /login with a return param;
// non-HTML callers get a plain 401.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		ret := url.QueryEscape(currentURI(r))
		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireRole ensures the signed-in user holds one of the allowed
// roles. Missing user gets 401 semantics, wrong role gets 403.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				ret := url.QueryEscape(currentURI(r))
				if wantsHTML(r) {
					http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
