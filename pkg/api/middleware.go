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

package api

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// commonMiddleware tags each request with an ID, logs it, and sets CORS
// headers. Preflight requests are answered here.
func (s *APIServer) commonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		s.logger.Debug().
			Str("request_id", requestID).
			Str("remote_addr", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Handling request")

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// apiKeyMiddleware rejects requests without the configured X-API-Key. With
// no key configured the surface stays open.
func (s *APIServer) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		requestKey := r.Header.Get("X-API-Key")
		if requestKey == "" {
			requestKey = r.URL.Query().Get("api_key")
		}

		if requestKey != s.apiKey {
			s.logger.Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Unauthorized API access attempt")
			writeErrorCode(w, "Unauthorized", statusError, http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware converts a handler panic into a 500 so one bad request
// cannot take the listener down.
func (s *APIServer) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("Recovered from handler panic")
				writeErrorCode(w, "Internal server error", statusError, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
