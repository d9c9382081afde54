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

// Package ratelimit throttles callers before requests reach the aggregator.
package ratelimit

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
)

const (
	defaultRequestsPerMinute = 60
	defaultBurstSize         = 10

	bucketIdleTimeout = 10 * time.Minute
	cleanupInterval   = time.Minute
)

// Config controls the per-client token buckets.
type Config struct {
	RequestsPerMinute int
	BurstSize         int
	BypassPaths       []string
}

// Limiter implements token-bucket rate limiting keyed by client IP.
type Limiter struct {
	config  Config
	buckets sync.Map // map[string]*tokenBucket
	logger  logger.Logger
	now     func() time.Time
}

type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// New creates a limiter and starts its idle-bucket cleanup loop.
func New(config Config, log logger.Logger) *Limiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = defaultRequestsPerMinute
	}

	if config.BurstSize <= 0 {
		config.BurstSize = defaultBurstSize
	}

	l := &Limiter{
		config: config,
		logger: log.WithComponent("ratelimit"),
		now:    time.Now,
	}

	go l.cleanupLoop()

	return l
}

// Middleware rejects over-limit requests with a 429 JSON payload before
// they reach the handler chain.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, path := range l.config.BypassPaths {
			if r.URL.Path == path {
				next.ServeHTTP(w, r)
				return
			}
		}

		clientID := l.clientID(r)

		if !l.Allow(clientID) {
			l.logger.Warn().
				Str("client", clientID).
				Str("path", r.URL.Path).
				Msg("request rate limited")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", l.config.RequestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)

			_ = json.NewEncoder(w).Encode(models.ErrorResponse{
				Error:      "Rate limit exceeded",
				Status:     "error",
				Code:       http.StatusTooManyRequests,
				RetryAfter: "60",
			})

			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow consumes one token for clientID, reporting whether the request may
// proceed.
func (l *Limiter) Allow(clientID string) bool {
	value, _ := l.buckets.LoadOrStore(clientID, &tokenBucket{
		tokens:     float64(l.config.BurstSize),
		lastRefill: l.now(),
	})
	bucket := value.(*tokenBucket)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := l.now()
	elapsed := now.Sub(bucket.lastRefill).Minutes()

	bucket.tokens += elapsed * float64(l.config.RequestsPerMinute)
	if bucket.tokens > float64(l.config.BurstSize) {
		bucket.tokens = float64(l.config.BurstSize)
	}

	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false
	}

	bucket.tokens--

	return true
}

func (l *Limiter) clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || ip == "" {
		return r.RemoteAddr
	}

	return ip
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := l.now().Add(-bucketIdleTimeout)

		l.buckets.Range(func(key, value interface{}) bool {
			bucket := value.(*tokenBucket)

			bucket.mu.Lock()
			idle := bucket.lastRefill.Before(cutoff)
			bucket.mu.Unlock()

			if idle {
				l.buckets.Delete(key)
			}

			return true
		})
	}
}
