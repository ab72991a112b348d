package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/clab/internal/config"
	"github.com/claude/clab/internal/service"
)

// Options configures a Server.
type Options struct {
	APIKey   string
	Calendar config.CalendarConfig
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc      *service.Service
	log      *slog.Logger
	apiKey   string
	calendar config.CalendarConfig
	mcp      http.Handler
	whois    WhoIser
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(svc *service.Service, opts Options, log *slog.Logger) *Server {
	s := &Server{
		svc:      svc,
		log:      log,
		apiKey:   opts.APIKey,
		calendar: opts.Calendar,
		mcp:      opts.MCP,
	}
	s.routes()
	return s
}

// SetTailscale resolves callers through the tailnet from now on.
func (s *Server) SetTailscale(who WhoIser) {
	s.whois = who
	s.routes()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(RequestID)
	if s.whois != nil {
		r.Use(TailscaleIdentity(s.whois, s.log))
	} else {
		r.Use(DevIdentity)
	}
	r.Use(RequestLogging(s.log))
	r.Use(CORS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/state", s.handleState)
		r.Get("/plan", s.handleGetPlan)
		r.Get("/plan/weeks/{week}", s.handleGetWeek)
		r.Get("/stats", s.handleStats)
		r.Get("/paces", s.handlePaces)
		r.Get("/export/plan.ics", s.handleExportICS)
		r.Get("/export/plan.xlsx", s.handleExportXLSX)
		r.Get("/export/plan.csv", s.handleExportCSV)

		// Mutations (API key required when configured)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Put("/profile", s.handleUpdateProfile)
			r.Post("/plan", s.handleGeneratePlan)
			r.Post("/plan/weeks/{week}/swap", s.handleSwapDays)
			r.Post("/plan/weeks/{week}/schedule/reset", s.handleResetSchedule)
			r.Post("/plan/weeks/{week}/progress/reset", s.handleResetProgress)
			r.Post("/plan/weeks/{week}/feedback", s.handleFeedback)
			r.Post("/sessions/{id}/toggle", s.handleToggleSession)
			r.Post("/exercises/{id}/toggle", s.handleToggleExercise)
			r.Put("/view", s.handleSetView)
			r.Delete("/state", s.handleResetState)
		})
	})

	if s.mcp != nil {
		r.With(APIKeyAuth(s.apiKey)).Handle("/mcp", s.mcp)
	}
	s.router = r
}
