package login

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/dmagnetico/arsenal/internal/app/features/errors"
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/dmagnetico/arsenal/internal/app/system/timeouts"
	"github.com/dmagnetico/arsenal/internal/app/system/unlock"
	"github.com/dmagnetico/arsenal/internal/domain/models"
	"go.uber.org/zap"
)

// Fixed administrator credentials. The portal has exactly one admin
// account; members authenticate with the shared access key instead.
const (
	AdminEmail    = "admin@dominio.com"
	adminPassword = "admin123"
	adminName     = "Comandante Supremo"
)

// Join-date bookkeeping keys. The first successful login stamps the
// identity's join date, which every later lock evaluation counts from.
const (
	AdminJoinKey  = "dm_admin_join_date"
	JoinKeyPrefix = "dm_join_date_"
)

// KV is the slice of the small-value store the login flow needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Handler owns the sign-in flow.
type Handler struct {
	KV         KV
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
}

// NewHandler constructs a login Handler.
func NewHandler(kv KV, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		KV:         kv,
		SessionMgr: sessionMgr,
		Log:        logger,
		ErrLog:     errLog,
	}
}

type formData struct {
	Title     string
	Error     string
	Email     string
	ReturnURL string
}

// ServeForm handles GET /login.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, homeFor(u), http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", formData{
		Title:     "Entrar",
		ReturnURL: r.URL.Query().Get("return"),
	})
}

// HandlePost handles POST /login.
//
// Two identities exist: the fixed admin account, and members, who sign
// in with any email plus the shared access key. A member's first login
// stamps their join date; later logins reuse it so timed locks keep
// counting from the original instant.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: bad form", "Pedido invalido.", "/login")
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email")))
	password := r.PostFormValue("password")
	returnURL := r.PostFormValue("return")

	var u models.User
	switch {
	case email == AdminEmail && password == adminPassword:
		u = models.User{
			ID:            AdminEmail,
			Name:          adminName,
			Role:          models.RoleAdmin,
			MagneticPower: models.AdminMagneticPower,
		}
		u.JoinedAt = h.joinDate(r.Context(), AdminJoinKey)

	case email != "" && unlock.Normalize(password) == unlock.MasterKey:
		u = models.User{
			ID:            email,
			Name:          nameFromEmail(email),
			Role:          models.RoleUser,
			MagneticPower: models.UserMagneticPower,
		}
		u.JoinedAt = h.joinDate(r.Context(), JoinKeyPrefix+email)

	default:
		h.Log.Info("login rejected", zap.String("email", email))
		w.WriteHeader(http.StatusUnauthorized)
		templates.Render(w, r, "login", formData{
			Title:     "Entrar",
			Error:     "Credenciais invalidas. Verifique o email e a chave de acesso.",
			Email:     email,
			ReturnURL: returnURL,
		})
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.ErrLog.LogServerError(w, r, "login: session save failed", err,
			"Nao foi possivel iniciar a sessao.", "/login")
		return
	}

	h.Log.Info("login succeeded",
		zap.String("email", email),
		zap.String("role", u.Role))

	dest := homeFor(u)
	if returnURL != "" && strings.HasPrefix(returnURL, "/") && !strings.HasPrefix(returnURL, "//") {
		dest = returnURL
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// joinDate returns the stored join date for the key, stamping and
// persisting the current instant on first login. Store failures fall
// back to now so login never blocks on bookkeeping.
func (h *Handler) joinDate(ctx context.Context, key string) int64 {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	now := time.Now().UnixMilli()

	raw, ok, err := h.KV.Get(ctx, key)
	if err != nil {
		h.Log.Error("join date read failed", zap.String("key", key), zap.Error(err))
		return now
	}
	if ok {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
		h.Log.Warn("join date corrupt, restamping", zap.String("key", key), zap.String("value", raw))
	}

	if err := h.KV.Set(ctx, key, strconv.FormatInt(now, 10)); err != nil {
		h.Log.Error("join date write failed", zap.String("key", key), zap.Error(err))
	}
	return now
}

func nameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

func homeFor(u models.User) string {
	if u.IsAdmin() {
		return "/arsenal"
	}
	return "/library"
}
