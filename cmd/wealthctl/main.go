package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/globalwealth/wealthdash/cmd/wealthctl/cli"
	"github.com/globalwealth/wealthdash/internal/app"
	"github.com/globalwealth/wealthdash/internal/view"
	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/dashboard"
)

type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return exitError{code: code}
}

var rootCmd = &cobra.Command{
	Use:           "wealthctl",
	Short:         "Operate the global wealth dashboard",
	Long:          "wealthctl renders and exports the wealth dashboard, validates the dataset and manages snapshot jobs and the page cache.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard HTML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := view.NewEngine()
		if err != nil {
			return fmt.Errorf("parse templates: %w", err)
		}
		return exitWith(cli.RenderCommand(cmd.Context(), cli.RenderOptions{
			Out:    renderOut,
			Pages:  dashboard.NewBuilder(templates, dashboard.SVGCharts()),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}))
	},
}

var (
	exportTable string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export dataset tables as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitWith(cli.ExportCommand(cmd.Context(), cli.ExportOptions{
			Table:  exportTable,
			Out:    exportOut,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}))
	},
}

var (
	validateTolerance float64
	validateJSON      bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every percentage column sums to 100",
	Long:  "validate exits 0 when the dataset is consistent and 10 when any check fails.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitWith(cli.ValidateCommand(cmd.Context(), cli.ValidateOptions{
			Tolerance:  validateTolerance,
			JSONOutput: validateJSON,
			Stdout:     cmd.OutOrStdout(),
			Stderr:     cmd.ErrOrStderr(),
		}))
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage background jobs",
}

var triggerFormat string

var jobsTriggerCmd = &cobra.Command{
	Use:       "trigger <job>",
	Short:     "Enqueue a job (snapshot)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"snapshot"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		jobsCLI, err := cli.NewJobsCLI(cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = jobsCLI.Close() }()
		return exitWith(jobsCLI.TriggerCommand(cmd.Context(), cli.TriggerOptions{
			Job:    args[0],
			Format: triggerFormat,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}))
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the page cache",
}

var cacheBumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Invalidate cached pages by bumping the cache version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		var cache *wealth.Cache
		if cfg.CacheEnabled() {
			client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			defer func() { _ = client.Close() }()
			cache = wealth.NewCache(client, cfg.PageCacheTTL)
		}
		return exitWith(cli.CacheBumpCommand(cmd.Context(), cli.CacheBumpOptions{
			Cache:  cache,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}))
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write HTML to this file instead of stdout")

	exportCmd.Flags().StringVarP(&exportTable, "table", "t", "all", "table to export: wealth, billionaires, historical or all")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write CSV to this file instead of stdout")

	validateCmd.Flags().Float64Var(&validateTolerance, "tolerance", wealth.DefaultTolerance, "allowed drift of a percentage column from 100")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit JSON output")

	jobsTriggerCmd.Flags().StringVar(&triggerFormat, "format", "pdf", "snapshot format: pdf or html")
	jobsCmd.AddCommand(jobsTriggerCmd)

	cacheCmd.AddCommand(cacheBumpCmd)

	rootCmd.AddCommand(renderCmd, exportCmd, validateCmd, jobsCmd, cacheCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
