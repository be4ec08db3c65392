package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"datasight/app"
	"datasight/internal"
	reqlog "datasight/ui/middleware"
)

// App is the HTTP surface of the analysis service
type App struct {
	router  *chi.Mux
	service *app.AnalysisService
	config  Config
	logger  *internal.Logger
}

// Config holds HTTP application configuration
type Config struct {
	// StaticDir is the built single page app; empty disables static serving
	StaticDir string
	// AllowedOrigins for CORS; "*" allows any origin
	AllowedOrigins []string
	// MaxUploadBytes bounds the size of an upload request body; 0 means unlimited
	MaxUploadBytes int64
}

// NewApp creates the HTTP application
func NewApp(service *app.AnalysisService, config Config, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.NopLogger()
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"*"}
	}

	a := &App{
		router:  chi.NewRouter(),
		service: service,
		config:  config,
		logger:  logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// Handler returns the root http.Handler
func (a *App) Handler() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(reqlog.RequestLogger(a.logger))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		r.Post("/upload", a.handleUpload)
		r.Post("/generate-chart", a.handleGenerateChart)
		r.Post("/chat", a.handleChat)

		r.Get("/profiles", a.handleListProfiles)
		r.Get("/profiles/{file_id}", a.handleGetProfile)
		r.Delete("/profiles/{file_id}", a.handleDeleteProfile)
		r.Get("/profiles/{file_id}/report", a.handleReport)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
		})
	})

	// Everything else is the single page app
	a.router.Get("/*", a.handleStatic)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
