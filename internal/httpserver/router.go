package httpserver

import (
	"net/http"

	"codeassist/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WebHandler страница и API генерации.
type WebHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
}

// MetricsProvider отдаёт обработчик /metrics и принимает наблюдения о запросах.
type MetricsProvider interface {
	middleware.RequestObserver
	Handler() http.Handler
}

type RouterDeps struct {
	Logger  *zap.Logger
	Web     WebHandler
	Metrics MetricsProvider
}

// NewRouter собирает chi-роутер с общими middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/", deps.Web.Index)
	r.Post("/", deps.Web.Submit)
	r.Post("/api/v1/generate", deps.Web.Generate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})

	return r
}
