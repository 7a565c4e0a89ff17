package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/helpdesk-io/helpdesk-cli/internal/roles"
)

// promptPassword reads a password without echo, falling back to the
// flag value when one was given (scripted use).
func (c *CLI) promptPassword(flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(c.errOut, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(c.errOut)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (c *CLI) registerCmd() *cobra.Command {
	var (
		roleName string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create a new account",
		Long: `Create a new account on the helpdesk backend.

Registration does not log you in; follow up with 'helpdesk login'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := c.promptPassword(password, "Password: ")
			if err != nil {
				return c.report(err)
			}
			if err := c.app.Register(cmd.Context(), args[0], pass, roleName); err != nil {
				return c.report(err)
			}
			c.success("Registration successful. Please log in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&roleName, "role", string(roles.RoleStudent), "Role to register as (student, support, department, admin)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func (c *CLI) loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := c.promptPassword(password, "Password: ")
			if err != nil {
				return c.report(err)
			}
			sess, err := c.app.Login(cmd.Context(), args[0], pass)
			if err != nil {
				return c.report(err)
			}
			c.success("Login successful.")
			c.success("Logged in as %s (%s).", sess.Identity, roles.Label(roles.Role(sess.Role)))
			return nil
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func (c *CLI) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Long: `Clear the stored session. Logout is local only: the backend keeps
no client-revocable token state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Logout(); err != nil {
				return c.report(err)
			}
			c.success("Logged out.")
			return nil
		},
	}
}

func (c *CLI) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity and role",
		Long: `Show the current identity and role.

The role comes from the profile endpoint when reachable; otherwise the
unverified token payload serves as a display hint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return c.report(err)
			}
			sess, err := c.app.Refresh(cmd.Context())
			if err != nil {
				return c.report(err)
			}
			c.success("%s (%s)", sess.Identity, roles.Label(roles.Role(sess.Role)))
			return nil
		},
	}
}
