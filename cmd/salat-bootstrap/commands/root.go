// Package commands implements the salat-bootstrap CLI.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salahapp/salat-bootstrap/internal/bootstrap"
	"github.com/salahapp/salat-bootstrap/internal/config"
	"github.com/salahapp/salat-bootstrap/internal/logger"
	"github.com/salahapp/salat-bootstrap/internal/role"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd dispatches to a role. Anything that is not a known subcommand
// is treated as a role selector.
var rootCmd = &cobra.Command{
	Use:   "salat-bootstrap <role>",
	Short: "Deployment entrypoint for the Salat prayer-times services",
	Long: `salat-bootstrap is the container entrypoint for the Salat deployment.

Given a role it waits for the configured dependencies (REDIS_URL cache,
DATABASE_URL store) to accept connections, runs the idempotent schema
initialization, and then replaces itself with the role's process.

Roles:
  web        API server, binds PORT (default 8000), serves /health
  worker     background task consumer
  scheduler  periodic task trigger
  monitor    task monitoring dashboard on port 5555

Environment:
  REDIS_URL     cache endpoint; unset skips the cache readiness wait
  DATABASE_URL  Postgres connection string; unset skips the store
                readiness wait and schema initialization
  PORT          web listening port (default 8000)
  WORKERS       web worker count / worker concurrency (default 2)
  LOG_LEVEL     debug|info|warn|error (default info)
  LOG_FORMAT    text|json (default text)`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRole,
}

// Execute runs the CLI. A non-nil return means the process must exit
// non-zero; the caller prints the diagnostic.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(healthcheckCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func usageError() error {
	return fmt.Errorf("usage: salat-bootstrap {%s}", strings.Join(role.Names(), "|"))
}

func runRole(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageError()
	}

	spec, err := role.Lookup(args[0])
	if err != nil {
		return fmt.Errorf("%w\n%v", err, usageError())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return err
	}

	b, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	// Does not return on success: the process image is replaced.
	return b.Run(cmd.Context(), spec)
}
