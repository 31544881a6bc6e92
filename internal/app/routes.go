package app

import (
	"net/http"
	"time"

	"github.com/ferdiebergado/devconnector/internal/auth"
	"github.com/ferdiebergado/devconnector/internal/middleware"
	"github.com/ferdiebergado/devconnector/internal/pkg/message"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
	"github.com/ferdiebergado/devconnector/internal/platform/router"
	"github.com/ferdiebergado/devconnector/internal/platform/validation"
	"github.com/ferdiebergado/devconnector/internal/profile"
	"github.com/ferdiebergado/devconnector/internal/user"
)

func (a *App) setupRoutes() {
	p := a.provider

	users := user.NewModule(p.DB)
	authModule := auth.NewModule(p, users.Service())
	profiles := profile.NewModule(p.DB)
	guard := authModule.Guard()

	p.Router.Get("/{$}", handleRoot)
	p.Router.Group("/api", func(api router.Router) {
		api.Get("/health", handleHealth)
		mountAuthRoutes(api, authModule.Handler(), guard, p.Validator, p.Cfg.Server.MaxBodyBytes)
		mountUserRoutes(api, users.Handler())
		mountProfileRoutes(api, profiles.Handler(), guard, p.Validator, p.Cfg.Server.MaxBodyBytes)
	})
}

func mountAuthRoutes(r router.Router, handler *auth.Handler, guard router.Middleware, validator validation.Validator, maxBodySize int64) {
	r.Group("/auth", func(gr router.Router) {
		gr.Post("/register", handler.Register,
			middleware.DecodePayload[auth.RegisterRequest](maxBodySize),
			middleware.ValidateInput[auth.RegisterRequest](validator))
		gr.Post("/login", handler.Login,
			middleware.DecodePayload[auth.LoginRequest](maxBodySize),
			middleware.ValidateInput[auth.LoginRequest](validator))
		gr.Get("/me", handler.Me, guard)
	})
}

func mountUserRoutes(r router.Router, handler *user.Handler) {
	r.Get("/users", handler.List)
}

func mountProfileRoutes(r router.Router, handler *profile.Handler, guard router.Middleware, validator validation.Validator, maxBodySize int64) {
	r.Get("/profile/me", handler.Mine, guard)
	r.Post("/profile", handler.Save,
		guard,
		middleware.DecodePayload[profile.SaveRequest](maxBodySize),
		middleware.ValidateInput[profile.SaveRequest](validator))
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	msg := message.APIRunning
	web.RespondOK[struct{}](w, &msg, nil)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	web.RespondOK(w, nil, &healthResponse{Status: "OK", Timestamp: time.Now().UTC()})
}
