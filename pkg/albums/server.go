package albums

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Routes served by the application.
const (
	RouteHealth  = "/health"
	RouteAlbums  = "/api/v1/music-albums"
	RouteMetrics = "/metrics"
)

// Server serves the albums HTTP API.
type Server struct {
	store   *Store
	metrics *Metrics
	log     logrus.FieldLogger
}

// NewServer returns a server reading from store.
func NewServer(store *Store, metrics *Metrics, log logrus.FieldLogger) *Server {
	return &Server{store: store, metrics: metrics, log: log}
}

// Handler returns the routed and instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+RouteHealth, s.instrument(RouteHealth, http.HandlerFunc(s.health)))
	mux.Handle("GET "+RouteAlbums, s.instrument(RouteAlbums, http.HandlerFunc(s.album)))
	mux.Handle("GET "+RouteMetrics, s.instrument(RouteMetrics,
		promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{Registry: s.metrics.Registry})))

	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	err := s.store.Ping(r.Context())
	if err != nil {
		s.log.WithError(err).Warn("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) album(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "query parameter key is required")

		return
	}

	id, err := strconv.Atoi(key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "query parameter key must be an integer")

		return
	}

	// Keys are stored in canonical form, so 01 and +1 find album 1.
	key = strconv.Itoa(id)

	album, err := s.store.Get(r.Context(), key)

	switch {
	case errors.Is(err, ErrAlbumNotFound):
		s.metrics.recordLookup(LookupMiss)
		writeError(w, http.StatusNotFound, "album "+key+" not found")
	case err != nil:
		s.metrics.recordLookup(LookupError)
		s.log.WithError(err).WithField("key", key).Error("album lookup failed")
		writeError(w, http.StatusBadGateway, "album store unavailable")
	default:
		s.metrics.recordLookup(LookupHit)
		writeJSON(w, http.StatusOK, album)
	}
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		elapsed := time.Since(start)
		s.metrics.recordRequest(route, strconv.Itoa(recorder.status), elapsed.Seconds())
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"route":    route,
			"status":   recorder.status,
			"duration": elapsed.String(),
		}).Debug("request served")
	})
}

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
