package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/api"
	"github.com/shrimpsizemoose/gradehub/internal/forms"
	"github.com/shrimpsizemoose/gradehub/internal/metrics"
)

// statusRecorder keeps the status code for the duration histogram.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Timed wraps a handler with the request duration histogram, labelled by
// the route pattern rather than the concrete path.
func Timed(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			metrics.HTTPRequestDuration.WithLabelValues(
				route,
				r.Method,
				strconv.Itoa(rec.status),
			).Observe(time.Since(start).Seconds())
		}()
		next(rec, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

// screenResponse pairs a screen snapshot with its load error, which the
// snapshot itself does not serialize.
type screenResponse struct {
	State any    `json:"state"`
	Error string `json:"error,omitempty"`
}

type formResponse[D any] struct {
	Form  string         `json:"form"`
	State forms.State[D] `json:"state"`
}

// submitStatus maps a submit error onto the status code of our response.
// Backend client errors pass through; anything else from the backend is a
// bad gateway.
func submitStatus(err error) int {
	var (
		verr *forms.ValidationError
		te   *api.TransportError
		ne   *api.NetworkError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, forms.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &te):
		if te.Status >= 400 && te.Status < 500 {
			return te.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &ne):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
