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

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fedspend/usaspending-mcp/cmd/internal/app"
	"github.com/fedspend/usaspending-mcp/cmd/internal/flags"
	cmdmodels "github.com/fedspend/usaspending-mcp/cmd/internal/models"
	"github.com/fedspend/usaspending-mcp/internal/far"
	"github.com/fedspend/usaspending-mcp/internal/history"
	"github.com/fedspend/usaspending-mcp/internal/logging"
	"github.com/fedspend/usaspending-mcp/internal/ratelimit"
	"github.com/fedspend/usaspending-mcp/internal/retry"
	"github.com/fedspend/usaspending-mcp/internal/server"
	"github.com/fedspend/usaspending-mcp/internal/usaspending"
	"github.com/fedspend/usaspending-mcp/models"
)

const serverName = "usaspending-mcp"

// Cmd represents the base command when called without any subcommands.
type Cmd struct {
	// Version params.
	appVersion string
	commitHash string

	flagsApp     *flags.App
	flagsService *flags.Service
}

func NewCmd(appVersion, commitHash string) *cobra.Command {
	c := &Cmd{
		appVersion: appVersion,
		commitHash: commitHash,

		flagsApp:     flags.NewApp(),
		flagsService: flags.NewService(),
	}

	rootCmd := &cobra.Command{
		Use:   "usaspending-mcp",
		Short: "MCP server for U.S. federal spending and FAR lookups",
		RunE:  c.run,
	}

	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().AddFlagSet(c.flagsApp.NewFlagSet())
	rootCmd.Flags().AddFlagSet(c.flagsService.NewFlagSet())

	return rootCmd
}

func (c *Cmd) run(cmd *cobra.Command, _ []string) error {
	if c.flagsApp.Version {
		c.printVersion()
		return nil
	}

	appParams := c.flagsApp.GetApp()
	serviceParams := c.flagsService.GetService()

	logger, err := app.NewLogger(appParams.LogLevel, appParams.Verbose, appParams.LogJSON)
	if err != nil {
		return err
	}

	limiterConfig := models.RateLimiterConfigFromRPM(
		serviceParams.RequestsPerMinute, serviceParams.Burst)

	retryPolicy := &models.RetryPolicy{
		BaseDelay:   serviceParams.BaseDelay,
		MaxDelay:    serviceParams.MaxDelay,
		Multiplier:  serviceParams.BackoffMultiplier,
		MaxAttempts: serviceParams.MaxAttempts,
		Jitter:      serviceParams.BackoffJitter,
	}

	limiter, err := ratelimit.NewLimiter(limiterConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	executor, err := retry.NewExecutor(limiter, retryPolicy, logger)
	if err != nil {
		return fmt.Errorf("failed to create retry executor: %w", err)
	}

	clientOpts := []usaspending.ClientOpt{
		usaspending.WithBaseURL(serviceParams.BaseURL),
		usaspending.WithLogger(logger),
		usaspending.WithID(serverName),
	}
	if serviceParams.RetryMalformedBody {
		clientOpts = append(clientOpts, usaspending.WithRetryMalformedBody())
	}

	apiClient, err := usaspending.NewClient(executor, clientOpts...)
	if err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}

	ctx := cmd.Context()

	index, err := far.Load(ctx, serviceParams.FARDir, logger)
	if err != nil {
		return fmt.Errorf("failed to load FAR index: %w", err)
	}

	store, err := newHistoryStore(ctx, serviceParams, logger)
	if err != nil {
		return err
	}

	srv := server.New(
		server.Config{
			Name:          serverName,
			Version:       c.appVersion,
			MaxConcurrent: serviceParams.MaxConcurrent,
			InboundRPS:    serviceParams.InboundRPS,
			InboundBurst:  serviceParams.InboundBurst,
		},
		apiClient,
		index,
		store,
		logger,
	)

	switch serviceParams.Transport {
	case "stdio":
		logger.Info("serving tools over stdio")
		return srv.ServeStdio()
	case "http":
		logger.Info("serving tools over http",
			slog.String("addr", serviceParams.ListenAddr),
		)

		return srv.ServeHTTP(serviceParams.ListenAddr)
	default:
		return fmt.Errorf("unknown transport %q, expected stdio or http", serviceParams.Transport)
	}
}

// newHistoryStore selects the history backend: Redis when an address is
// configured, otherwise the in-memory default.
func newHistoryStore(
	ctx context.Context, serviceParams *cmdmodels.Service, logger *slog.Logger,
) (history.Store, error) {
	if serviceParams.RedisAddr == "" {
		if logger != nil {
			logging.WithStore(logger, logging.StoreTypeMemory).
				Debug("using in-memory history store")
		}

		return history.NewMemoryStore(serviceParams.HistoryLimit), nil
	}

	store, err := history.NewRedisStore(ctx, history.RedisConfig{
		Addr:     serviceParams.RedisAddr,
		Password: serviceParams.RedisPassword,
		DB:       serviceParams.RedisDB,
		Limit:    serviceParams.HistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create history store: %w", err)
	}

	if logger != nil {
		logging.WithStore(logger, logging.StoreTypeRedis).
			Debug("using redis history store",
				slog.String("addr", serviceParams.RedisAddr),
			)
	}

	return store, nil
}

func (c *Cmd) printVersion() {
	version := c.appVersion
	if c.commitHash != "" {
		version += "." + c.commitHash
	}

	fmt.Printf("version: %s\n", version)
}
