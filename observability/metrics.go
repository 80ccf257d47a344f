/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package observability exports the geoviz Prometheus metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recomputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoviz_recomputations_total",
			Help: "Chart updates by the amount of work they caused.",
		},
		[]string{"kind"},
	)

	dataTooLargeTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geoviz_data_too_large_total",
			Help: "Chart updates rejected for exceeding the data points limit.",
		},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geoviz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
		},
		[]string{"route", "status"},
	)
)

// IncRecomputation counts a chart update of the provided kind: "full",
// "color", or "none".
func IncRecomputation(kind string) {
	recomputationsTotal.WithLabelValues(kind).Inc()
}

// IncDataTooLarge counts a chart update rejected for its size.
func IncDataTooLarge() {
	dataTooLargeTotal.Inc()
}

// ObserveHTTP records the duration of a served request.
func ObserveHTTP(route string, status int, durationSeconds float64) {
	httpRequestDurationSeconds.WithLabelValues(route, strconv.Itoa(status)).Observe(durationSeconds)
}

// Middleware times every request, labelled by its chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ObserveHTTP(route, status, time.Since(start).Seconds())
	})
}
