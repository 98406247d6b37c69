package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/dmagnetico/arsenal/internal/domain/models"
	"go.uber.org/zap"
)

const testKey = "test-session-key-for-testing-only"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return m
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Error("empty session key must be rejected")
	}
}

func TestSignIn_RoundTrip(t *testing.T) {
	m := newManager(t)

	u := models.User{
		ID:            "admin@dominio.com",
		Name:          "Comandante Supremo",
		Role:          models.RoleAdmin,
		JoinedAt:      1700000000000,
		MagneticPower: models.AdminMagneticPower,
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := m.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn must set a session cookie")
	}

	var got models.User
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = auth.CurrentUser(r)
	})

	req2 := httptest.NewRequest(http.MethodGet, "/library", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	m.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req2)

	if !found {
		t.Fatal("user must be loadable from the session cookie")
	}
	if got.ID != u.ID || got.Name != u.Name || got.Role != u.Role {
		t.Errorf("identity: got %+v", got)
	}
	if got.JoinedAt != u.JoinedAt || got.MagneticPower != u.MagneticPower {
		t.Errorf("profile fields: got joined=%d power=%d", got.JoinedAt, got.MagneticPower)
	}
}

func TestLoadSessionUser_Anonymous(t *testing.T) {
	m := newManager(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); ok {
			t.Error("anonymous request must not carry a user")
		}
	})
	req := httptest.NewRequest(http.MethodGet, "/library", nil)
	m.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireSignedIn(t *testing.T) {
	m := newManager(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.RequireSignedIn(next)

	req := httptest.NewRequest(http.MethodGet, "/library", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous non-HTML: got %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/library", nil)
	req.Header.Set("Accept", "text/html")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("anonymous browser: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Flibrary" {
		t.Errorf("redirect: got %q", loc)
	}

	req = auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/library", nil),
		models.User{ID: "x@y.com", Role: models.RoleUser})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: got %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	m := newManager(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.RequireRole(models.RoleAdmin)(next)

	req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/arsenal", nil),
		models.User{ID: "x@y.com", Role: models.RoleUser})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member hitting admin surface: got %d, want 403", rec.Code)
	}

	req = auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/arsenal", nil),
		models.User{ID: "admin@dominio.com", Role: models.RoleAdmin})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin: got %d, want 200", rec.Code)
	}
}
