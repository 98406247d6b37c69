package login_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	uierrors "github.com/dmagnetico/arsenal/internal/app/features/errors"
	"github.com/dmagnetico/arsenal/internal/app/features/login"
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"go.uber.org/zap"
)

type memKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemKV() *memKV { return &memKV{m: make(map[string]string)} }

func (s *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func newTestHandler(t *testing.T) (*login.Handler, *memKV) {
	t.Helper()
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	kv := newMemKV()
	return login.NewHandler(kv, sessionMgr, errLog, logger), kv
}

func postLogin(t *testing.T, h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandlePost(rec, req)
	return rec
}

func TestHandlePost_AdminSuccess(t *testing.T) {
	h, kv := newTestHandler(t)

	rec := postLogin(t, h, url.Values{
		"email":    {"admin@dominio.com"},
		"password": {"admin123"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/arsenal" {
		t.Errorf("Location: got %q, want /arsenal", loc)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
	if _, ok := kv.m[login.AdminJoinKey]; !ok {
		t.Error("first admin login must stamp the admin join date")
	}
}

func TestHandlePost_MemberWithMasterKey(t *testing.T) {
	h, kv := newTestHandler(t)

	rec := postLogin(t, h, url.Values{
		"email":    {"Maria@Exemplo.com"},
		"password": {"MAGNETICO2026"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/library" {
		t.Errorf("Location: got %q, want /library", loc)
	}
	if _, ok := kv.m[login.JoinKeyPrefix+"maria@exemplo.com"]; !ok {
		t.Error("first member login must stamp a per-email join date")
	}
}

func TestHandlePost_JoinDateStable(t *testing.T) {
	h, kv := newTestHandler(t)
	kv.m[login.JoinKeyPrefix+"x@y.com"] = "1700000000000"

	postLogin(t, h, url.Values{
		"email":    {"x@y.com"},
		"password": {"magnetico2026"},
	})

	if kv.m[login.JoinKeyPrefix+"x@y.com"] != "1700000000000" {
		t.Error("repeat login must not move the join date")
	}
}

func TestHandlePost_Rejections(t *testing.T) {
	h, _ := newTestHandler(t)

	for name, form := range map[string]url.Values{
		"wrong admin password": {"email": {"admin@dominio.com"}, "password": {"nope"}},
		"wrong member key":     {"email": {"x@y.com"}, "password": {"MAGNETICO2025"}},
		"empty email":          {"email": {""}, "password": {"MAGNETICO2026"}},
	} {
		rec := func() *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			func() {
				defer func() { recover() }() // render may panic without booted templates
				h.HandlePost(rec, req)
			}()
			return rec
		}()
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status got %d, want 401", name, rec.Code)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Errorf("%s: rejection must not set a session cookie", name)
		}
	}
}

func TestHandlePost_ReturnURL(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postLogin(t, h, url.Values{
		"email":    {"x@y.com"},
		"password": {"MAGNETICO2026"},
		"return":   {"/library/r1"},
	})
	if loc := rec.Header().Get("Location"); loc != "/library/r1" {
		t.Errorf("Location: got %q, want the return target", loc)
	}

	rec = postLogin(t, h, url.Values{
		"email":    {"x@y.com"},
		"password": {"MAGNETICO2026"},
		"return":   {"https://evil.example.com"},
	})
	if loc := rec.Header().Get("Location"); loc != "/library" {
		t.Errorf("offsite return must be ignored, got %q", loc)
	}
}
