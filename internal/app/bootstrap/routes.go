// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	adminauthfeature "github.com/dipu67/folio/internal/app/features/adminauth"
	contactapifeature "github.com/dipu67/folio/internal/app/features/contactapi"
	githubapifeature "github.com/dipu67/folio/internal/app/features/githubapi"
	healthfeature "github.com/dipu67/folio/internal/app/features/health"
	imagesapifeature "github.com/dipu67/folio/internal/app/features/imagesapi"
	portfolioapifeature "github.com/dipu67/folio/internal/app/features/portfolioapi"
	telegramapifeature "github.com/dipu67/folio/internal/app/features/telegramapi"
	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, seeding, and any
// Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the stores and clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Route map:
//   - GET  /api/portfolio          public content document read
//   - POST /api/portfolio          admin whole-document replace
//   - POST /api/contact            public submission or admin replace
//   - GET/PATCH/DELETE /api/contact admin inbox management
//   - /api/images                  admin image management
//   - /api/admin/auth              login and logout
//   - /api/telegram                admin notifier test/debug
//   - GET  /api/github/{repo}      public stats proxy
//   - /health, /ready, /livez      probes
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// CSRF protection middleware with path-based relaxation for the two
	// endpoints a client reaches before it holds a token. Cookie name is
	// "folio_csrf" to avoid collisions with other services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("folio_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	// The contact form posts anonymously and login is what issues the first
	// token, so those two paths skip verification only. The middleware still
	// runs for them so the login response can carry a fresh token.
	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			switch req.URL.Path {
			case "/api/contact", "/api/admin/auth":
				csrfHandler.ServeHTTP(w, csrf.UnsafeSkipCheck(req))
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators.
	// The probed backend follows the content store selection.
	var pingers []healthfeature.Pinger
	if deps.MongoClient != nil {
		pingers = append(pingers, healthfeature.MongoPinger{Client: deps.MongoClient})
	} else {
		pingers = append(pingers, healthfeature.DataDirPinger{Dir: appCfg.DataDir})
	}
	healthHandler := healthfeature.NewHandler(logger, pingers...)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Uploaded images (local storage only)
	// When using local storage, serve files from the configured path
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Content document: public read, admin whole-document replace
	portfolioHandler := portfolioapifeature.NewHandler(deps.Content, logger)
	r.Mount("/api/portfolio", portfolioapifeature.Routes(portfolioHandler, sessionMgr))

	// Contact inbox: public submission plus admin management
	contactHandler := contactapifeature.NewHandler(deps.Inbox, sessionMgr, logger)
	r.Mount("/api/contact", contactapifeature.Routes(contactHandler, sessionMgr))

	// Image management (admin only). Listing reads the local upload
	// directory; S3 deployments browse the bucket out of band.
	imagesHandler := imagesapifeature.NewHandler(deps.FileStorage, imagesapifeature.DirLister{Dir: appCfg.StorageLocalPath}, logger)
	r.Mount("/api/images", imagesapifeature.Routes(imagesHandler, sessionMgr))

	// Admin login and logout
	authHandler := adminauthfeature.NewHandler(sessionMgr, appCfg.AdminPassword, logger)
	r.Mount("/api/admin/auth", adminauthfeature.Routes(authHandler))

	// Telegram notifier test/debug endpoints (admin only)
	telegramHandler := telegramapifeature.NewHandler(deps.Telegram, logger)
	r.Mount("/api/telegram", telegramapifeature.Routes(telegramHandler, sessionMgr))

	// GitHub stats proxy for project cards (public)
	githubHandler := githubapifeature.NewHandler(deps.GitHub, logger)
	r.Mount("/api/github", githubapifeature.Routes(githubHandler))

	return r, nil
}
