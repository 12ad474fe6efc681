// Package router builds the route table served by cmd/students-api.
package router

import (
	"net/http"

	"github.com/aanand-mishra/students-api/internal/http/handlers/student"
	"github.com/aanand-mishra/students-api/internal/http/middleware"
	"github.com/aanand-mishra/students-api/internal/utils/response"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// New registers every route on a fresh ServeMux.
//
//	POST   /api/students        create a student
//	GET    /api/students        list all students
//	GET    /api/students/{id}   get one student
//	PUT    /api/students/{id}   replace a student
//	DELETE /api/students/{id}   delete a student
//	GET    /healthz             liveness probe
//	GET    /metrics             Prometheus exposition
//
// API routes go through the full middleware chain. /healthz and /metrics
// skip rate limiting so probes and scrapes never get a 429.
func New(ctrl *student.Controller, limiter *rate.Limiter) *http.ServeMux {
	api := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Chain(h,
			middleware.Metrics,
			middleware.RequestID,
			middleware.Recover,
			middleware.RateLimit(limiter),
			middleware.Logging,
		)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST "+student.BasePath, api(student.New(ctrl)))
	mux.HandleFunc("GET "+student.BasePath, api(student.GetList(ctrl)))
	mux.HandleFunc("GET "+student.BasePath+"/{id}", api(student.GetByID(ctrl)))
	mux.HandleFunc("PUT "+student.BasePath+"/{id}", api(student.Update(ctrl)))
	mux.HandleFunc("DELETE "+student.BasePath+"/{id}", api(student.Delete(ctrl)))

	mux.HandleFunc("GET /healthz", middleware.Chain(health, middleware.Metrics))
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func health(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, response.Response{Status: response.StatusOK})
}
