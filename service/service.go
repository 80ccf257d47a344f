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

// Package service assembles the geoviz HTTP service: the data source over a
// collection root, its query dispatcher, and the handlers serving them.
package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ilhamster/geoviz/config"
	datasource "github.com/ilhamster/geoviz/data_source"
	"github.com/ilhamster/geoviz/handlers"
	"github.com/ilhamster/geoviz/logger"
	"github.com/ilhamster/geoviz/observability"
	querydispatcher "github.com/ilhamster/geoviz/query_dispatcher"
)

// Service serves geo charts read from a collection root.
type Service struct {
	queryHandler  handlers.Handler
	legendHandler handlers.Handler
	log           *zerolog.Logger
}

// New returns a Service configured by cfg.
func New(cfg *config.Config, log *zerolog.Logger) (*Service, error) {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	ds, err := datasource.New(datasource.NewFileFetcher(cfg.CollectionRoot), datasource.Options{
		CacheCapacity:   cfg.CacheCapacity,
		H3Resolution:    cfg.H3Resolution,
		DataPointsLimit: cfg.DataPointsLimit,
		Logger:          log,
	})
	if err != nil {
		return nil, err
	}
	qd, err := querydispatcher.New(ds)
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("queries", qd.Queries()).Msg("registered data queries")
	return &Service{
		queryHandler:  handlers.NewQueryHandler(qd).Wrap(logRequests(log)),
		legendHandler: handlers.NewLegendHandler(ds),
		log:           log,
	}, nil
}

// logRequests logs the outcome of every data request.
func logRequests(log *zerolog.Logger) handlers.WrapFunc {
	return func(next handlers.HandlerFunc) handlers.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next(ww, req)
			logger.FromContext(req.Context(), log).Debug().
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("data request")
		}
	}
}

// requestContext carries chi's request ID into the logging context.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := logger.WithRequestID(req.Context(), middleware.GetReqID(req.Context()))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// RegisterHandlers registers the receiver's handlers on r.
func (s *Service) RegisterHandlers(r chi.Router) {
	for _, h := range []handlers.Handler{s.queryHandler, s.legendHandler} {
		for path, handler := range h.HandlersByPath() {
			r.HandleFunc(path, handler)
		}
	}
}

// Router returns the complete HTTP handler of the receiver, including health
// and metrics endpoints.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestContext)
	r.Use(middleware.Recoverer)
	r.Use(observability.Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	s.RegisterHandlers(r)
	return r
}

// Run serves the receiver on addr until ctx is done, then shuts down
// gracefully.
func (s *Service) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http listen")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
