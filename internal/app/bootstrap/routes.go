// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmagnetico/arsenal/internal/app/catalog"
	arsenalfeature "github.com/dmagnetico/arsenal/internal/app/features/arsenal"
	errorsfeature "github.com/dmagnetico/arsenal/internal/app/features/errors"
	healthfeature "github.com/dmagnetico/arsenal/internal/app/features/health"
	libraryfeature "github.com/dmagnetico/arsenal/internal/app/features/library"
	loginfeature "github.com/dmagnetico/arsenal/internal/app/features/login"
	logoutfeature "github.com/dmagnetico/arsenal/internal/app/features/logout"
	kvstore "github.com/dmagnetico/arsenal/internal/app/store/kv"
	resourcestore "github.com/dmagnetico/arsenal/internal/app/store/resources"
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/dmagnetico/arsenal/internal/app/system/deliverable"
	"github.com/dmagnetico/arsenal/internal/app/system/unlock"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It boots the template engine,
// loads the catalog, applies session middleware, and mounts the
// feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	// Persistence and the engine pieces every surface shares. The
	// catalog load is synchronous so the first request already sees the
	// merged state.
	kv := kvstore.New(deps.ArsenalMongoDatabase)
	resStore := resourcestore.New(deps.ArsenalMongoDatabase)

	cat := catalog.New(resStore, kv, logger)
	loadCtx, cancel := startupContext()
	cat.Load(loadCtx, catalog.Seed)
	cancel()

	vault := unlock.NewVault(kv)
	blobs := deliverable.NewRegistry(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the user into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ArsenalMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(kv, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Member library and staged payloads
	libraryHandler := libraryfeature.NewHandler(cat, vault, blobs, errLog, logger)
	r.Mount("/library", libraryfeature.Routes(libraryHandler, sessionMgr))
	r.Mount("/blob", libraryfeature.BlobRoutes(libraryHandler, sessionMgr))

	// Admin curation surface
	arsenalHandler := arsenalfeature.NewHandler(cat, errLog, logger)
	r.Mount("/arsenal", arsenalfeature.Routes(arsenalHandler, sessionMgr))

	// Landing: members go to the library, everyone else to login.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if _, ok := auth.CurrentUser(req); ok {
			http.Redirect(w, req, "/library", http.StatusSeeOther)
			return
		}
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	})

	return r, nil
}

// startupContext bounds the synchronous catalog load during startup.
func startupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
