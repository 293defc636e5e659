// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the API.

HTTP traffic is labelled by chi route pattern rather than raw path, so
"/api/v1/series/{slug}" stays a single series no matter how many slugs exist.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/truyenmoi/internal/platform/middleware"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	reader   *prometheus.CounterVec
}

// New registers the API collectors, plus Go runtime and process collectors,
// on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	metrics := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reader: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reader_events_total",
			Help: "Chapter views and explicit reads recorded by the reader.",
		}, []string{"kind"}),
	}

	registry.MustRegister(
		metrics.requests,
		metrics.duration,
		metrics.reader,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return metrics
}

// Middleware records request count and latency.
func (metrics *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		recorder := &middleware.StatusRecorder{ResponseWriter: writer, Status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		metrics.requests.WithLabelValues(request.Method, route, strconv.Itoa(recorder.Status)).Inc()
		metrics.duration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}

// ChapterViewed counts a successful chapter resolution.
func (metrics *Metrics) ChapterViewed() { metrics.reader.WithLabelValues("view").Inc() }

// ChapterRead counts an explicit read signal.
func (metrics *Metrics) ChapterRead() { metrics.reader.WithLabelValues("read").Inc() }

// ObservePool exports connection pool gauges sampled at scrape time.
func (metrics *Metrics) ObservePool(stat func() *pgxpool.Stat) {
	gauge := func(name, help string, value func(*pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return value(stat())
		})
	}

	metrics.registry.MustRegister(
		gauge("db_pool_acquired_conns", "Connections currently checked out of the pool.",
			func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
		gauge("db_pool_idle_conns", "Idle connections held by the pool.",
			func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("db_pool_max_conns", "Configured pool ceiling.",
			func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{Registry: metrics.registry})
}
