package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) suggestCmd() *cobra.Command {
	var (
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Preview the backend's department/priority recommendation",
		Long: `Preview the department and priority the backend would recommend for
a ticket draft. The recommendation is non-binding; use it with
'tickets create --suggest' or ignore it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestion, err := c.app.Suggest(cmd.Context(), title, description)
			if err != nil {
				return c.report(err)
			}
			c.success("Department: %s", suggestion.Department)
			c.success("Priority:   %s", suggestion.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Ticket title")
	cmd.Flags().StringVar(&description, "description", "", "Ticket description")
	cmd.MarkFlagRequired("description")
	return cmd
}
