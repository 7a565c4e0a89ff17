package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helpdesk-io/helpdesk-cli/internal/api"
	"github.com/helpdesk-io/helpdesk-cli/internal/models"
	"github.com/helpdesk-io/helpdesk-cli/internal/view"
)

// oneOf checks a value against the backend's accepted set. The server
// validates too; this just fails before the round trip.
func oneOf(value string, accepted []string) bool {
	for _, a := range accepted {
		if value == a {
			return true
		}
	}
	return false
}

func parseTicketID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("ticket ID must be a positive number, got %q", arg)
	}
	return id, nil
}

// renderList fetches the role-appropriate list and prints it. Every
// mutation flow ends here so the user sees confirmed state, never a
// local guess.
func (c *CLI) renderList(ctx context.Context, filters view.Filters) error {
	vm, err := c.app.FetchView(ctx, filters)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, view.Render(vm))
	return nil
}

func (c *CLI) ticketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List and manage tickets",
	}

	cmd.AddCommand(c.ticketsListCmd())
	cmd.AddCommand(c.ticketsCreateCmd())
	cmd.AddCommand(c.ticketsCommentCmd())
	cmd.AddCommand(c.ticketsAssignDepartmentCmd())
	cmd.AddCommand(c.ticketsReassignSupportCmd())
	cmd.AddCommand(c.ticketsStatusCmd())
	return cmd
}

func (c *CLI) ticketsListCmd() *cobra.Command {
	var filters view.Filters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the ticket list for your role",
		Long: `Show the ticket list for your role: your own tickets as a student,
assigned tickets as support staff, the department's tickets as a
department manager, or every ticket as an admin. The department and
status filters apply to the admin view and are forwarded to the
backend verbatim.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}
			return c.report(c.renderList(cmd.Context(), filters))
		},
	}

	cmd.Flags().StringVar(&filters.Department, "department", "", "Filter by department (admin view)")
	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by status")
	cmd.Flags().BoolVar(&filters.SortByPriority, "sort-priority", false, "Sort by priority, highest first")
	return cmd
}

func (c *CLI) ticketsCreateCmd() *cobra.Command {
	var (
		req     api.CreateRequest
		suggest bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new ticket",
		Long: `Open a new ticket. With --suggest, the backend recommends a
department and priority from the title and description; the
recommendation fills any of those fields you left empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}

			if suggest && (req.DepartmentName == "" || req.Priority == "") {
				suggestion, err := c.app.Suggest(cmd.Context(), req.Title, req.Description)
				if err != nil {
					return c.report(err)
				}
				c.success("Suggested department: %s, priority: %s", suggestion.Department, suggestion.Priority)
				if req.DepartmentName == "" {
					req.DepartmentName = suggestion.Department
				}
				if req.Priority == "" {
					req.Priority = suggestion.Priority
				}
			}
			if req.Priority == "" {
				req.Priority = "Low"
			}
			if !oneOf(req.Priority, models.Priorities()) {
				return c.report(fmt.Errorf("priority must be one of %s, got %q", strings.Join(models.Priorities(), ", "), req.Priority))
			}

			ticket, err := c.app.CreateTicket(cmd.Context(), req)
			if err != nil {
				return c.report(err)
			}
			c.success("Ticket #%d created.", ticket.ID)
			return c.report(c.renderList(cmd.Context(), view.Filters{}))
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Ticket title")
	cmd.Flags().StringVar(&req.Description, "description", "", "Ticket description")
	cmd.Flags().StringVar(&req.DepartmentName, "department", "", "Target department")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "Priority (Low, Medium, High)")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "Fill department/priority from the backend suggestion")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("description")
	return cmd
}

func (c *CLI) ticketsCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <ticket-id> <content>",
		Short: "Add a comment to a ticket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}
			id, err := parseTicketID(args[0])
			if err != nil {
				return c.report(err)
			}
			if err := c.app.Comment(cmd.Context(), id, args[1]); err != nil {
				return c.report(err)
			}
			c.success("Comment added.")
			return c.report(c.renderList(cmd.Context(), view.Filters{}))
		},
	}
	return cmd
}

func (c *CLI) ticketsAssignDepartmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign-department <ticket-id> <department>",
		Short: "Route a ticket to a department (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}
			id, err := parseTicketID(args[0])
			if err != nil {
				return c.report(err)
			}
			if err := c.app.AssignDepartment(cmd.Context(), id, args[1]); err != nil {
				return c.report(err)
			}
			c.success("Ticket #%d assigned to %s.", id, args[1])
			return c.report(c.renderList(cmd.Context(), view.Filters{}))
		},
	}
	return cmd
}

func (c *CLI) ticketsReassignSupportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reassign-support <ticket-id> <support-id>",
		Short: "Hand a ticket to a different support user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}
			id, err := parseTicketID(args[0])
			if err != nil {
				return c.report(err)
			}
			supportID, err := strconv.Atoi(args[1])
			if err != nil || supportID <= 0 {
				return c.report(fmt.Errorf("support ID must be a positive number, got %q", args[1]))
			}
			if err := c.app.ReassignSupport(cmd.Context(), id, supportID); err != nil {
				return c.report(err)
			}
			c.success("Ticket #%d reassigned to support #%d.", id, supportID)
			return c.report(c.renderList(cmd.Context(), view.Filters{}))
		},
		Args: cobra.ExactArgs(2),
	}
	return cmd
}

func (c *CLI) ticketsStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <ticket-id> <new-status>",
		Short: "Move a ticket to a new status",
		Long: `Move a ticket to a new status. The backend accepts Open,
"In Progress", Resolved, and Closed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}
			id, err := parseTicketID(args[0])
			if err != nil {
				return c.report(err)
			}
			if !oneOf(args[1], models.Statuses()) {
				return c.report(fmt.Errorf("status must be one of %s, got %q", strings.Join(models.Statuses(), ", "), args[1]))
			}
			if err := c.app.UpdateStatus(cmd.Context(), id, args[1]); err != nil {
				return c.report(err)
			}
			c.success("Ticket #%d moved to %s.", id, args[1])
			return c.report(c.renderList(cmd.Context(), view.Filters{}))
		},
	}
	return cmd
}
