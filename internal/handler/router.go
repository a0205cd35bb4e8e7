package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestTimeout = 5 * time.Minute

// PreviewHandler отдает миниатюры изображений
type PreviewHandler interface {
	GetPreview(w http.ResponseWriter, r *http.Request)
}

// RouterOptions настройки HTTP слоя
type RouterOptions struct {
	CORSOrigins []string
}

// NewRouter собирает chi роутер со всеми маршрутами API
func NewRouter(logger *slog.Logger, workspaces *WorkspaceHandler, previews PreviewHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(MetricsMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/v1/workspaces", func(r chi.Router) {
		r.Post("/", workspaces.CreateWorkspace)

		r.Route("/{ws}", func(r chi.Router) {
			r.Get("/", workspaces.GetWorkspace)
			r.Delete("/", workspaces.DropWorkspace)

			r.Post("/files", workspaces.UploadFiles)
			r.Delete("/files/selected", workspaces.DeleteSelected)
			r.Post("/files/{id}/toggle", workspaces.ToggleSelect)
			if previews != nil {
				r.Get("/files/{id}/preview", previews.GetPreview)
			}

			r.Post("/selection/toggle-all", workspaces.ToggleAll)
			r.Put("/order", workspaces.Reorder)
			r.Put("/sort", workspaces.SetSort)
			r.Put("/layout", workspaces.SetLayout)

			r.Post("/rename/preview", workspaces.PreviewRename)
			r.Post("/rename", workspaces.CommitRename)

			r.Get("/export", workspaces.Export)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:     "ok",
			Workspaces: workspaces.service.ActiveWorkspaces(),
			Timestamp:  time.Now(),
		}
		if err := writeJSON(w, http.StatusOK, resp); err != nil {
			logger.Error("error encoding response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type HealthResponse struct {
	Status     string    `json:"status"`
	Workspaces int       `json:"workspaces"`
	Timestamp  time.Time `json:"timestamp"`
}
