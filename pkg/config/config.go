/*
 * Copyright 2025 Wardrive Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads and validates service configuration. Structure comes
// from a JSON file; provider credentials may be supplied or overridden
// through environment variables so secrets can stay out of config files.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
)

// Validator is implemented by configuration structs that can check
// themselves after loading.
type Validator interface {
	Validate() error
}

// Loader loads configuration from a source into dst.
type Loader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// FileLoader loads configuration from a local JSON file.
type FileLoader struct{}

// Load implements Loader by reading and unmarshaling a JSON file.
func (*FileLoader) Load(_ context.Context, path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}

// Config holds the configuration loading dependencies.
type Config struct {
	loader Loader
	logger logger.Logger
}

// NewConfig initializes a Config with a file loader.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Config{
		loader: &FileLoader{},
		logger: log,
	}
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate loads a configuration file, overlays environment
// credentials for service configs, and validates the result.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if err := c.loader.Load(ctx, path, cfg); err != nil {
		return err
	}

	if serviceCfg, ok := cfg.(*models.Config); ok {
		ApplyEnvOverrides(serviceCfg)
	}

	return ValidateConfig(cfg)
}

// envOverrides maps environment variables onto credential fields. An env
// var always wins over the file value.
var envOverrides = []struct {
	name  string
	apply func(cfg *models.Config, value string)
}{
	{"WIGLE_API_NAME", func(cfg *models.Config, v string) { cfg.Wigle.APIName = v }},
	{"WIGLE_API_TOKEN", func(cfg *models.Config, v string) { cfg.Wigle.APIToken = v }},
	{"OPENCELLID_API_KEY", func(cfg *models.Config, v string) { cfg.OpenCellID.APIKey = v }},
	{"SHODAN_API_KEY", func(cfg *models.Config, v string) { cfg.Shodan.APIKey = v }},
	{"APP_API_KEY", func(cfg *models.Config, v string) { cfg.APIKey = v }},
	{"REDIS_ADDR", func(cfg *models.Config, v string) { cfg.Cache.RedisAddr = v }},
}

// ApplyEnvOverrides overlays provider credentials from the environment.
func ApplyEnvOverrides(cfg *models.Config) {
	for _, o := range envOverrides {
		if value := os.Getenv(o.name); value != "" {
			o.apply(cfg, value)
		}
	}
}
