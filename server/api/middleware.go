package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *StatusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func (a *API) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

func (a *API) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.metrics != nil {
			a.metrics.IncrementHTTPRequests()
			recorder := &StatusRecorder{
				ResponseWriter: w,
				Status:         http.StatusOK,
			}

			now := time.Now()
			next.ServeHTTP(recorder, r)
			elapsed := float64(time.Since(now)) / float64(time.Second)

			if recorder.Status < 200 || recorder.Status > 299 {
				a.metrics.IncrementHTTPErrors()
			}

			var routeMatch mux.RouteMatch
			a.router.Match(r, &routeMatch)
			if routeMatch.Route != nil {
				endpoint, err := routeMatch.Route.GetPathTemplate()
				if err != nil {
					endpoint = "unknown"
				}
				a.metrics.ObserveAPIEndpointDuration(endpoint, r.Method, strconv.Itoa(recorder.Status), elapsed)
			}
		} else {
			next.ServeHTTP(w, r)
		}
	})
}
