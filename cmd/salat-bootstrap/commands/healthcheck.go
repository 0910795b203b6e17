package commands

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/salahapp/salat-bootstrap/internal/config"
)

var (
	healthcheckPort    int
	healthcheckTimeout time.Duration
)

// healthcheckCmd is the probe half of the platform health contract:
// the container HEALTHCHECK invokes it periodically, and the platform
// counts consecutive non-zero exits against its failure threshold.
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probe the web role's /health endpoint",
	Long: `Probe the local web role's /health endpoint once.

Exits 0 on a 2xx response, 1 on any other response or on connection
failure. Intended as the container health-check command:

  HEALTHCHECK CMD salat-bootstrap healthcheck`,
	RunE: runHealthcheck,
}

func init() {
	healthcheckCmd.Flags().IntVar(&healthcheckPort, "port", 0, "Port to probe (default: PORT env or 8000)")
	healthcheckCmd.Flags().DurationVar(&healthcheckTimeout, "timeout", 5*time.Second, "Request timeout")
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	port := healthcheckPort
	if port == 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		port = cfg.Port
	}

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	if err := checkHealth(url, healthcheckTimeout); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "healthy")
	return nil
}

// checkHealth performs one GET against url and treats any 2xx status as
// healthy.
func checkHealth(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health probe: %s returned %s", url, resp.Status)
	}
	return nil
}
