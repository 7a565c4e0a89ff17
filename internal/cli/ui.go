package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/helpdesk-io/helpdesk-cli/internal/config"
	"github.com/helpdesk-io/helpdesk-cli/internal/tui"
	"github.com/helpdesk-io/helpdesk-cli/internal/view"
)

func (c *CLI) uiCmd() *cobra.Command {
	var filters view.Filters

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive ticket view",
		Long: `Open the interactive ticket view. Navigation and actions follow
your role: the same controls the list command would print are bound to
keys, and every mutation re-fetches the list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}
			if _, err := c.app.Refresh(cmd.Context()); err != nil {
				return c.report(err)
			}

			// Config edits while the UI runs need a restart to take
			// effect; surface that instead of silently ignoring them.
			config.Watch(c.viper, func(*config.Config) {
				c.logger.Printf("configuration changed on disk, restart to apply")
			})

			program := tea.NewProgram(tui.NewModel(c.app, filters), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return c.report(fmt.Errorf("terminal UI failed: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Department, "department", "", "Filter by department (admin view)")
	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by status")
	cmd.Flags().BoolVar(&filters.SortByPriority, "sort-priority", false, "Sort by priority, highest first")
	return cmd
}
