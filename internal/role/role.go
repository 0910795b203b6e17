// Package role holds the static registry of long-running roles the
// bootstrap can hand off to, and the process-replacement dispatch.
package role

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/salahapp/salat-bootstrap/internal/config"
	"github.com/salahapp/salat-bootstrap/internal/logger"
)

// ErrUnknownRole reports a selector outside the fixed enumeration.
var ErrUnknownRole = errors.New("unknown role")

// MonitorPort is the fixed port the monitoring dashboard binds.
// It is intentionally not configurable through PORT, which belongs to
// the web role.
const MonitorPort = 5555

// Name identifies one of the four dispatchable roles.
type Name string

const (
	Web       Name = "web"
	Worker    Name = "worker"
	Scheduler Name = "scheduler"
	Monitor   Name = "monitor"
)

// Spec describes how a role is launched. The registry below is static
// and never mutated; exactly one role is active per bootstrap
// invocation.
type Spec struct {
	Name   Name
	Binary string

	// argv builds the full argument vector, including argv[0].
	argv func(cfg *config.Config) []string

	// Binding is a human-readable description of the role's listening
	// port, for operator-facing listings.
	Binding string
}

// Argv returns the command line for the role under the given
// configuration snapshot.
func (s Spec) Argv(cfg *config.Config) []string {
	return s.argv(cfg)
}

// registry is ordered; Names and All preserve this order in usage text
// and listings.
var registry = []Spec{
	{
		Name:   Web,
		Binary: "salat-api",
		argv: func(cfg *config.Config) []string {
			return []string{
				"salat-api",
				"--host", "0.0.0.0",
				"--port", strconv.Itoa(cfg.Port),
				"--workers", strconv.Itoa(cfg.Workers),
			}
		},
		Binding: "PORT (default 8000), serves /health",
	},
	{
		Name:   Worker,
		Binary: "salat-worker",
		argv: func(cfg *config.Config) []string {
			return []string{
				"salat-worker",
				"--concurrency", strconv.Itoa(cfg.Workers),
				"--queues", "default,celery",
			}
		},
		Binding: "none",
	},
	{
		Name:   Scheduler,
		Binary: "salat-scheduler",
		argv: func(cfg *config.Config) []string {
			return []string{"salat-scheduler"}
		},
		Binding: "none",
	},
	{
		Name:   Monitor,
		Binary: "salat-monitor",
		argv: func(cfg *config.Config) []string {
			return []string{"salat-monitor", "--port", strconv.Itoa(MonitorPort)}
		},
		Binding: fmt.Sprintf("%d (dashboard)", MonitorPort),
	},
}

// All returns the role registry in declaration order.
func All() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}

// Names returns the valid role selectors in declaration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = string(s.Name)
	}
	return names
}

// Lookup resolves a selector to its Spec.
func Lookup(selector string) (Spec, error) {
	for _, s := range registry {
		if string(s.Name) == selector {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("%w %q (valid roles: %s)",
		ErrUnknownRole, selector, strings.Join(Names(), ", "))
}

// Dispatch replaces the current process with the role's command. On
// success it does not return: the dispatcher's process image becomes
// the role's, with no residual supervisor. Any returned error means the
// role was never started.
func Dispatch(spec Spec, cfg *config.Config) error {
	path, err := exec.LookPath(spec.Binary)
	if err != nil {
		return fmt.Errorf("role %s: locating %s: %w", spec.Name, spec.Binary, err)
	}

	argv := spec.Argv(cfg)
	logger.Info("dispatching role",
		"role", spec.Name,
		"command", strings.Join(argv, " "),
	)

	if err := replaceProcess(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("role %s: starting %s: %w", spec.Name, path, err)
	}
	return nil
}
