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

// Command geoviz serves geo chart pushpins and legends over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ilhamster/geoviz/config"
	"github.com/ilhamster/geoviz/logger"
	"github.com/ilhamster/geoviz/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "geoviz: %s\n", err)
		return 1
	}
	log := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "geoviz",
	}, os.Stdout)

	svc, err := service.New(cfg, &log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create service")
		return 1
	}
	log.Info().
		Str("collection_root", cfg.CollectionRoot).
		Int("cache_capacity", cfg.CacheCapacity).
		Int("h3_resolution", cfg.H3Resolution).
		Msg("starting geoviz")
	if err := svc.Run(ctx, cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		return 1
	}
	log.Info().Msg("server stopped")
	return 0
}
