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

// Package config loads the geoviz server configuration from the environment.
package config

import (
	"context"
	"fmt"

	"github.com/ilhamster/geoviz/execution"
	"github.com/sethvargo/go-envconfig"
)

// Config holds the configuration of the geoviz server.
type Config struct {
	// Server configuration
	Port int `env:"GEOVIZ_PORT,default=7420"`

	// Collections are read from <CollectionRoot>/<name>.json, and the charts
	// built from the CacheCapacity most recently used ones are kept.
	CollectionRoot string `env:"GEOVIZ_COLLECTION_ROOT,default=."`
	CacheCapacity  int    `env:"GEOVIZ_CACHE_CAPACITY,default=16"`

	// Chart defaults
	DataPointsLimit int `env:"GEOVIZ_DATA_POINTS_LIMIT,default=25000"`
	H3Resolution    int `env:"GEOVIZ_H3_RESOLUTION,default=6"`

	// Logging
	LogLevel   string `env:"GEOVIZ_LOG_LEVEL,default=info"`
	LogConsole bool   `env:"GEOVIZ_LOG_CONSOLE,default=false"`
}

// Load loads and validates the configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first out-of-range setting of the receiver.
func (c *Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("GEOVIZ_PORT %d out of range", c.Port)
	case c.CacheCapacity <= 0:
		return fmt.Errorf("GEOVIZ_CACHE_CAPACITY must be positive, got %d", c.CacheCapacity)
	case c.DataPointsLimit <= 0:
		return fmt.Errorf("GEOVIZ_DATA_POINTS_LIMIT must be positive, got %d", c.DataPointsLimit)
	case c.H3Resolution < 0 || c.H3Resolution > execution.MaxH3Resolution:
		return fmt.Errorf("GEOVIZ_H3_RESOLUTION must be in [0, %d], got %d", execution.MaxH3Resolution, c.H3Resolution)
	}
	return nil
}

// Addr returns the address the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
