package daemon

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/applog"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	inframetrics "github.com/VioletSpaceCadet/space-simulation-sub001/internal/infra/metrics"
)

// commandLimiters tracks one token-bucket rate limiter per caller IP for
// POST /commands, the same getLimiter/ipLimiters shape the teacher uses
// to protect its federation endpoints.
type commandLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newCommandLimiters() *commandLimiters {
	return &commandLimiters{limiters: make(map[string]*rate.Limiter)}
}

func (l *commandLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(5, 20)
		l.limiters[ip] = limiter
	}
	return limiter
}

// NewRouter builds the chi router exposing GET /status, GET
// /metrics/snapshot, GET /metrics (Prometheus), and POST /commands.
func NewRouter(sim *SharedSim, log *applog.Pair) http.Handler {
	limiters := newCommandLimiters()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, sim.Status())
	})

	r.Get("/metrics/snapshot", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, sim.Snapshot())
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Post("/commands", func(w http.ResponseWriter, req *http.Request) {
		ip, _, _ := net.SplitHostPort(req.RemoteAddr)
		if !limiters.get(ip).Allow() {
			inframetrics.CommandsRejected.WithLabelValues("rate_limited").Inc()
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		var envelope events.CommandEnvelope
		if err := json.NewDecoder(req.Body).Decode(&envelope); err != nil {
			inframetrics.CommandsRejected.WithLabelValues("bad_request").Inc()
			http.Error(w, "malformed command: "+err.Error(), http.StatusBadRequest)
			return
		}

		if err := sim.Enqueue(envelope); err != nil {
			inframetrics.CommandsRejected.WithLabelValues("rejected").Inc()
			log.Error.Printf("command rejected: %v", err)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		inframetrics.CommandsAccepted.Inc()
		w.WriteHeader(http.StatusAccepted)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
