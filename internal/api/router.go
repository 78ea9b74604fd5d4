package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quantify701/quantify/internal/api/handlers"
	"github.com/quantify701/quantify/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	screenHandler *handlers.ScreenHandler,
	signalHandler *handlers.SignalHandler,
	positionHandler *handlers.PositionHandler,
	healthHandler *handlers.HealthHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Screening endpoints
	api.HandleFunc("/screen", screenHandler.Screen).Methods("GET")
	api.HandleFunc("/screen", screenHandler.ScreenCustom).Methods("POST")
	api.HandleFunc("/presets", screenHandler.Presets).Methods("GET")
	api.HandleFunc("/scans/latest", screenHandler.LatestScan).Methods("GET")

	// Signal and target endpoints
	api.HandleFunc("/signal/{symbol}", signalHandler.Signal).Methods("GET")
	api.HandleFunc("/targets/{symbol}", signalHandler.Targets).Methods("GET")

	// Position endpoints
	api.HandleFunc("/positions", positionHandler.List).Methods("GET")
	api.HandleFunc("/positions", positionHandler.Create).Methods("POST")
	api.HandleFunc("/positions/{id}/close", positionHandler.Close).Methods("POST")
	api.HandleFunc("/trades", positionHandler.Trades).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
