package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/salahapp/salat-bootstrap/internal/cli/output"
	"github.com/salahapp/salat-bootstrap/internal/config"
	"github.com/salahapp/salat-bootstrap/internal/role"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the dispatchable roles and their commands",
	RunE:  runRoles,
}

func runRoles(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	table := output.NewTable("Role", "Command", "Binding")
	for _, spec := range role.All() {
		table.AddRow(string(spec.Name), strings.Join(spec.Argv(cfg), " "), spec.Binding)
	}
	table.Render(cmd.OutOrStdout())
	return nil
}
