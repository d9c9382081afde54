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

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/wardrive/netmapper/pkg/aggregator"
	"github.com/wardrive/netmapper/pkg/api"
	"github.com/wardrive/netmapper/pkg/cache"
	"github.com/wardrive/netmapper/pkg/config"
	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
	"github.com/wardrive/netmapper/pkg/providers/opencellid"
	"github.com/wardrive/netmapper/pkg/providers/shodan"
	"github.com/wardrive/netmapper/pkg/providers/wigle"
	"github.com/wardrive/netmapper/pkg/ratelimit"
	"github.com/wardrive/netmapper/pkg/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/netmapper/netmapper.json", "Path to netmapper config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg models.Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return err
	}

	mainLogger, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}

	mainLogger.Info().
		Str("version", version.GetFullVersion()).
		Str("listen_addr", cfg.ListenAddr).
		Msg("Starting netmapper")

	kv, closeCache := newCache(&cfg, mainLogger)
	defer closeCache()

	service := newService(&cfg, kv, mainLogger)

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		BurstSize:         cfg.RateLimit.BurstSize,
		BypassPaths:       []string{"/api/health"},
	}, mainLogger)

	server := api.NewAPIServer(
		api.WithDeviceService(service),
		api.WithLogger(mainLogger),
		api.WithAPIKey(cfg.APIKey),
		api.WithRateLimiter(limiter.Middleware),
	)

	errCh := make(chan error, 1)

	go func() {
		if err := server.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	mainLogger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// newCache selects Redis when an address is configured and otherwise falls
// back to the in-process cache.
func newCache(cfg *models.Config, log logger.Logger) (kv cache.KV, closer func()) {
	if cfg.Cache.RedisAddr == "" {
		log.Info().Msg("Using in-memory response cache")

		return cache.NewMemory(), func() {}
	}

	log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Using Redis response cache")

	redisCache := cache.NewRedis(cfg.Cache.RedisAddr, log)

	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}

func newService(cfg *models.Config, kv cache.KV, log logger.Logger) *aggregator.Service {
	providerTimeout := cfg.ProviderTimeout.Duration()

	wigleProvider := wigle.New(wigle.Config{
		APIName:   cfg.Wigle.APIName,
		APIToken:  cfg.Wigle.APIToken,
		Endpoint:  cfg.Wigle.Endpoint,
		Timeout:   providerTimeout,
		MaxRadius: cfg.MaxSearchRadius,
	}, kv, log)

	opencellidProvider := opencellid.New(opencellid.Config{
		APIKey:   cfg.OpenCellID.APIKey,
		Endpoint: cfg.OpenCellID.Endpoint,
		Timeout:  providerTimeout,
	}, kv, log)

	shodanProvider := shodan.New(shodan.Config{
		APIKey:   cfg.Shodan.APIKey,
		Endpoint: cfg.Shodan.Endpoint,
		Timeout:  providerTimeout,
	}, kv, log)

	return aggregator.New(aggregator.Config{
		MaxSearchRadius: cfg.MaxSearchRadius,
		RequestTimeout:  cfg.RequestTimeout.Duration(),
	}, wigleProvider, opencellidProvider, shodanProvider, log)
}
