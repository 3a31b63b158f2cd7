// Copyright 2025 FedSpend, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package usaspending is a client for the USASpending v2 REST API. Every
// request runs through the retry executor, which in turn draws one
// rate-limiter token per attempt, so no call can bypass the resilience
// pipeline. The client classifies each outcome into the closed failure set
// the executor switches on: success, transient, or fatal.
package usaspending

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/fedspend/usaspending-mcp/internal/logging"
	"github.com/fedspend/usaspending-mcp/internal/ratelimit"
	"github.com/fedspend/usaspending-mcp/internal/retry"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.usaspending.gov"

	// defaultTimeout bounds a single attempt; the retry executor owns the
	// overall budget.
	defaultTimeout = 30 * time.Second

	defaultUserAgent = "usaspending-mcp"

	// errorBodyLimit caps how much of an error response is kept as detail.
	errorBodyLimit = 2048
)

// Client calls the USASpending API through the resilience pipeline.
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *retry.Executor
	limiterKey string
	userAgent  string
	logger     *slog.Logger

	// retryMalformedBody treats a 2xx response with an undecodable body as
	// transient instead of fatal.
	retryMalformedBody bool
}

// ClientOpt is a functional option for the client.
type ClientOpt func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a staging deployment.
func WithBaseURL(u string) ClientOpt {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client. The supplied client's
// timeout bounds each individual attempt.
func WithHTTPClient(hc *http.Client) ClientOpt {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithID adds an identifier to every log record emitted by the client.
func WithID(id string) ClientOpt {
	return func(c *Client) {
		if c.logger != nil {
			c.logger = logging.WithClient(c.logger, id)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOpt {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLimiterKey selects the rate-limit domain the client draws tokens from.
func WithLimiterKey(key string) ClientOpt {
	return func(c *Client) {
		c.limiterKey = key
	}
}

// WithRetryMalformedBody retries 2xx responses whose body fails to decode.
// Off by default: a well-formed exchange yielding garbage usually means a
// contract change, which no retry can fix. Enable when a flaky gateway is
// known to truncate responses.
func WithRetryMalformedBody() ClientOpt {
	return func(c *Client) {
		c.retryMalformedBody = true
	}
}

// NewClient returns a client executing every call through executor.
func NewClient(executor *retry.Executor, opts ...ClientOpt) (*Client, error) {
	if executor == nil {
		return nil, fmt.Errorf("retry executor is required")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		executor:   executor,
		limiterKey: ratelimit.DefaultKey,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// get performs a GET through the resilience pipeline, decoding into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

// post performs a POST with a JSON payload through the resilience pipeline.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	return c.call(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	var body []byte

	if payload != nil {
		var err error

		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
	}

	_, err := retry.Do(ctx, c.executor, c.limiterKey, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.doOnce(ctx, method, path, body, out)
	})

	return err
}

// doOnce performs exactly one request/response cycle and returns a
// classified outcome: nil, a transient-tagged error, or a fatal error.
func (c *Client) doOnce(ctx context.Context, method, path string, body []byte, out any) error {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isNetworkError(err) {
			return retry.Transient(err)
		}

		return err
	}

	defer func() {
		if cErr := resp.Body.Close(); cErr != nil && c.logger != nil {
			c.logger.Debug("failed to close response body",
				slog.Any("err", cErr),
			)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{
			Status: resp.StatusCode,
			Detail: readErrorDetail(resp),
		}

		if isRetryableStatus(resp.StatusCode) {
			return retry.Transient(apiErr)
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	reader, err := responseReader(resp)
	if err != nil {
		return c.classifyDecodeError(err)
	}

	if err := json.NewDecoder(reader).Decode(out); err != nil {
		return c.classifyDecodeError(err)
	}

	return nil
}

func (c *Client) classifyDecodeError(err error) error {
	err = fmt.Errorf("failed to decode response body: %w", err)

	if c.retryMalformedBody {
		return retry.Transient(err)
	}

	return err
}

// responseReader unwraps gzip-encoded bodies. Automatic decompression is off
// because the Accept-Encoding header is set explicitly.
func responseReader(resp *http.Response) (io.Reader, error) {
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return resp.Body, nil
	}

	return gzip.NewReader(resp.Body)
}

func readErrorDetail(resp *http.Response) string {
	reader, err := responseReader(resp)
	if err != nil {
		return ""
	}

	detail, err := io.ReadAll(io.LimitReader(reader, errorBodyLimit))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(detail))
}
