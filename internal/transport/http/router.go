package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/wcontent-api/internal/application/account"
	"github.com/wcontent-api/internal/application/collaboration"
	fileapp "github.com/wcontent-api/internal/application/file"
	"github.com/wcontent-api/internal/application/opportunity"
	"github.com/wcontent-api/internal/application/verification"
	"github.com/wcontent-api/internal/config"
	"github.com/wcontent-api/internal/transport/http/handler"
	appmiddleware "github.com/wcontent-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Passthrough
	selfMw := func(string) func(http.Handler) http.Handler { return appmiddleware.Passthrough }
	if cfg.AuthEnforced && deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
		selfMw = appmiddleware.RequireSelf
	}

	trusted, err := appmiddleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		slog.Warn("ignoring trusted proxy entries", "err", err)
	}
	// 5 requests/second, burst of 10 on the unauthenticated credential endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10, trusted...)

	otpSvc := verification.NewService(verification.ServiceDeps{
		Store:      deps.OTPStore,
		Accounts:   deps.Accounts,
		Notifier:   deps.Notifier,
		TTL:        cfg.OTPTTL,
		CodeLength: cfg.OTPLength,
	})
	accountSvc := account.NewService(account.ServiceDeps{
		Accounts: deps.Accounts,
		Tokens:   deps.JWTProvider,
		Google:   deps.Google,
		Notifier: deps.Notifier,
	})
	opportunitySvc := opportunity.NewService(opportunity.ServiceDeps{
		Opportunities: deps.Opportunities,
		Accounts:      deps.Accounts,
		Notifier:      deps.Notifier,
	})
	collabSvc := collaboration.NewService(collaboration.ServiceDeps{
		Collaborations: deps.Collaborations,
		Accounts:       deps.Accounts,
		Notifier:       deps.Notifier,
	})
	fileSvc := fileapp.NewService(fileapp.ServiceDeps{Objects: deps.Resumes, URLTTL: cfg.ResumeURLTTL})

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc, otpSvc)
	opportunityH := handler.NewOpportunityHandler(opportunitySvc)
	collabH := handler.NewCollaborationHandler(collabSvc)
	fileH := handler.NewFileHandler(fileSvc)

	r.Get("/health", healthH.Health)

	r.Route("/api/users", func(r chi.Router) {
		// ── Public routes ────────────────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/request-otp", accountH.RequestOTP)
		r.With(sensitiveRL.Limit).Post("/verify-otp", accountH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/register", accountH.Register)
		r.With(sensitiveRL.Limit).Post("/login", accountH.Login)
		r.With(sensitiveRL.Limit).Post("/google-auth", accountH.GoogleAuth)
		r.Get("/opportunities/opportunitiesGetAll", opportunityH.ListAll)
		r.Get("/collabration/getCollabOfAllUsers", collabH.ListAll)

		// ── Authenticated when AUTH_ENFORCED ─────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/getAll", accountH.List)
			r.Get("/getUser/{id}", accountH.Get)
			r.With(selfMw("id")).Put("/update/{id}", accountH.Update)
			r.With(selfMw("id")).Delete("/delete/{id}", accountH.Delete)

			r.With(selfMw("userId")).Post("/opportunities/opportunity/{userId}", opportunityH.Create)
			r.Get("/opportunities/getMyOpportunities/{userId}", opportunityH.ListByOwner)

			r.Post("/application/opportunity/{id}/apply", opportunityH.Apply)
			r.Get("/application/opportunity/{id}/applicants", opportunityH.ListApplicants)
			r.Get("/application/myApplications/{userId}", opportunityH.MyApplications)
			r.Post("/application/resume", fileH.UploadResume)

			r.With(selfMw("id")).Post("/collabration/addCollab/{id}", collabH.Create)
			r.Get("/collabration/getCollabOfUser/{id}", collabH.ListByUser)
			r.Post("/collabration/deleteCollab/{id}", collabH.Delete)
			r.Post("/collabration/applyForCollab/{collabId}", collabH.Apply)
			r.Get("/collabration/getCollabRequests/{collabId}", collabH.ListRequests)
		})
	})

	return r
}
