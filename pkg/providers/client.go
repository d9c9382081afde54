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

// Package providers holds the HTTP fetch plumbing shared by the provider
// adapters. The fetch boundary is fail-open: timeouts, transport errors,
// non-2xx statuses and undecodable payloads are logged and reported as an
// absent payload, never as an error the caller must handle.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/wardrive/netmapper/pkg/logger"
)

// DefaultTimeout bounds a single remote provider call.
const DefaultTimeout = 10 * time.Second

const userAgent = "netmapper/1.0"

// BasicAuth carries credentials for providers that authenticate requests
// with HTTP basic auth.
type BasicAuth struct {
	Username string
	Password string
}

// Client is the shared HTTP client one adapter owns. It is safe for
// concurrent use; adapters hold it immutably after construction.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// NewClient builds a client rooted at baseURL with a per-call timeout.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// GetJSON issues a GET and decodes the JSON response into dst. It reports
// false when no usable payload was obtained.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, auth *BasicAuth, dst interface{}) bool {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		c.logger.Error().Err(err).Str("url", reqURL).Msg("failed to build request")
		return false
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if auth != nil {
		req.SetBasicAuth(auth.Username, auth.Password)
	}

	return c.do(req, dst)
}

// PostJSON issues a POST with a JSON body and decodes the JSON response
// into dst. It reports false when no usable payload was obtained.
func (c *Client) PostJSON(ctx context.Context, path string, body, dst interface{}) bool {
	reqURL := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		c.logger.Error().Err(err).Str("url", reqURL).Msg("failed to encode request body")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error().Err(err).Str("url", reqURL).Msg("failed to build request")
		return false
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst interface{}) bool {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", req.URL.String()).Msg("provider request failed")
		return false
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("url", req.URL.String()).
			Msg("provider returned non-OK status")

		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		c.logger.Error().Err(err).Str("url", req.URL.String()).Msg("invalid JSON response")
		return false
	}

	return true
}
