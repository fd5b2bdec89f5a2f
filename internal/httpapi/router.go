package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pumpScope/internal/metrics"
	"pumpScope/internal/model"
	"pumpScope/internal/stream"
)

// SessionInfo is the read side of a running stream session.
type SessionInfo interface {
	ID() string
	Program() string
	State() stream.State
	StartedAt() time.Time
}

// RecordLookup returns the records stored for a signature.
type RecordLookup interface {
	Records(signature string) []model.EventRecord
	Len() int
}

type Deps struct {
	Sessions []SessionInfo
	Records  RecordLookup
	Logger   *zap.Logger
}

type sessionView struct {
	ID        string     `json:"id"`
	Program   string     `json:"program"`
	State     string     `json:"state"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// NewRouter serves health, metrics and read-only watcher state.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/sessions", func(w http.ResponseWriter, r *http.Request) {
		views := make([]sessionView, 0, len(deps.Sessions))
		for _, s := range deps.Sessions {
			view := sessionView{ID: s.ID(), Program: s.Program(), State: s.State().String()}
			if started := s.StartedAt(); !started.IsZero() {
				view.StartedAt = &started
			}
			views = append(views, view)
		}
		writeJSON(w, http.StatusOK, views)
	})

	if deps.Records != nil {
		r.Get("/transactions", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]int{"tracked": deps.Records.Len()})
		})

		r.Get("/transactions/{signature}", func(w http.ResponseWriter, r *http.Request) {
			signature := chi.URLParam(r, "signature")
			records := deps.Records.Records(signature)
			if records == nil {
				http.Error(w, "transaction not found", http.StatusNotFound)
				return
			}
			writeJSON(w, http.StatusOK, model.Notification{
				Signature: signature,
				Slot:      records[len(records)-1].Slot,
				Records:   records,
			})
		})
	}

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
