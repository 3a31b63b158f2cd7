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

// Package server exposes spending and regulation lookups as MCP tools over
// stdio or HTTP. Tool handlers return plain errors; the middleware boundary
// converts them into tool results, keeping the "cannot succeed as given" and
// "currently unavailable" terminal classes distinguishable for the caller.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/fedspend/usaspending-mcp/internal/far"
	"github.com/fedspend/usaspending-mcp/internal/history"
	"github.com/fedspend/usaspending-mcp/internal/logging"
	"github.com/fedspend/usaspending-mcp/internal/retry"
	"github.com/fedspend/usaspending-mcp/internal/usaspending"
)

const defaultMaxConcurrent = 8

// Config carries server identity and admission settings.
type Config struct {
	Name    string
	Version string

	// MaxConcurrent caps tool invocations in flight; <= 0 uses the default.
	MaxConcurrent int64

	// InboundRPS and InboundBurst throttle the HTTP transport. Zero RPS
	// disables the throttle. Stdio serves a single client and is never
	// throttled.
	InboundRPS   float64
	InboundBurst int
}

// Server wires the API client, the FAR index and the history store into an
// MCP tool server.
type Server struct {
	api    *usaspending.Client
	index  *far.Index
	store  history.Store
	logger *slog.Logger
	sem    *semaphore.Weighted
	config Config

	mcp *mcpserver.MCPServer
}

// New assembles the server and registers all tools.
func New(
	config Config,
	api *usaspending.Client,
	index *far.Index,
	store history.Store,
	logger *slog.Logger,
) *Server {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	s := &Server{
		api:    api,
		index:  index,
		store:  store,
		logger: logger,
		sem:    semaphore.NewWeighted(maxConcurrent),
		config: config,
	}

	s.mcp = mcpserver.NewMCPServer(
		config.Name,
		config.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithToolHandlerMiddleware(s.middleware),
	)

	s.registerTools()

	return s
}

// ServeStdio serves a single client over stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

// ServeHTTP serves the streamable HTTP transport on addr.
func (s *Server) ServeHTTP(addr string) error {
	var handler http.Handler = mcpserver.NewStreamableHTTPServer(s.mcp)

	if s.config.InboundRPS > 0 {
		burst := s.config.InboundBurst
		if burst < 1 {
			burst = 1
		}

		handler = throttle(handler, rate.NewLimiter(rate.Limit(s.config.InboundRPS), burst))
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return httpServer.ListenAndServe()
}

// throttle rejects inbound requests above the configured rate. Outbound
// calls are paced separately by the token-bucket limiter; this only protects
// the server process itself.
func throttle(next http.Handler, limiter *rate.Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// middleware is the single boundary every tool call crosses: it caps
// concurrency, times the call, records it in the history store, and maps
// terminal failures onto user-facing tool results.
func (s *Server) middleware(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer s.sem.Release(1)

		logger := s.logger
		if logger != nil {
			logger = logging.WithTool(logger, req.Params.Name)
		}

		start := time.Now()
		entry := history.NewEntry(sessionID(ctx), req.Params.Name, encodeArgs(req))

		result, err := next(ctx, req)

		entry.Elapsed = time.Since(start)

		switch {
		case err == nil && (result == nil || !result.IsError):
			entry.Outcome = history.OutcomeSuccess
		case err == nil:
			entry.Outcome = history.OutcomeFatal
		case errors.Is(err, retry.ErrRetriesExhausted):
			entry.Outcome = history.OutcomeUnavailable
			entry.Detail = err.Error()
			result = mcp.NewToolResultError(
				"The service is currently unavailable, try again later: " + err.Error())
			err = nil
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			// Cancellation is a protocol-level outcome, not a tool result.
			entry.Outcome = history.OutcomeFatal
			entry.Detail = err.Error()
		default:
			entry.Outcome = history.OutcomeFatal
			entry.Detail = err.Error()
			result = mcp.NewToolResultError(
				"This request cannot succeed as given: " + err.Error())
			err = nil
		}

		if s.store != nil {
			if aErr := s.store.Append(ctx, entry); aErr != nil && logger != nil {
				logger.Error("failed to record history entry",
					slog.Any("err", aErr),
				)
			}
		}

		if logger != nil {
			logger.Info("tool call finished",
				slog.String("outcome", string(entry.Outcome)),
				slog.Duration("elapsed", entry.Elapsed),
			)
		}

		return result, err
	}
}

// sessionID identifies the calling client session, falling back to a shared
// id for transports without session tracking.
func sessionID(ctx context.Context) string {
	if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
		if id := session.SessionID(); id != "" {
			return id
		}
	}

	return "default"
}

func encodeArgs(req mcp.CallToolRequest) string {
	args := req.GetArguments()
	if len(args) == 0 {
		return "{}"
	}

	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}

	return string(data)
}
