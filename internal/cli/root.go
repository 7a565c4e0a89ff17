// Package cli wires the user-triggered flows to cobra commands. Every
// command reads its inputs, calls the App, prints a confirmation or
// the error message, and re-fetches where the flow calls for it.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/helpdesk-io/helpdesk-cli/internal/api"
	"github.com/helpdesk-io/helpdesk-cli/internal/app"
	"github.com/helpdesk-io/helpdesk-cli/internal/config"
	"github.com/helpdesk-io/helpdesk-cli/internal/session"
)

// CLI carries the shared state for all commands: the App owns the
// session, the config decides where the backend lives.
type CLI struct {
	app    *app.App
	cfg    *config.Config
	viper  *viper.Viper
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// NewRootCmd builds the helpdesk command tree.
func NewRootCmd() *cobra.Command {
	cli := &CLI{
		out:    os.Stdout,
		errOut: os.Stderr,
	}

	var (
		configPath  string
		sessionPath string
		verbose     bool
	)

	rootCmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Helpdesk CLI - terminal client for the ticket-support system",
		Long: `Helpdesk Command Line Interface

A terminal client for the student ticket-support system. Log in once
and your session is stored locally; every command then talks to the
backend with your role's view of the ticket list.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.setup(configPath, sessionPath, verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "Path to the session file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log request diagnostics to stderr")

	rootCmd.AddCommand(cli.registerCmd())
	rootCmd.AddCommand(cli.loginCmd())
	rootCmd.AddCommand(cli.logoutCmd())
	rootCmd.AddCommand(cli.whoamiCmd())
	rootCmd.AddCommand(cli.ticketsCmd())
	rootCmd.AddCommand(cli.suggestCmd())
	rootCmd.AddCommand(cli.uiCmd())

	return rootCmd
}

// setup loads configuration and the stored session, then constructs
// the App.
func (c *CLI) setup(configPath, sessionPath string, verbose bool) error {
	cfg, v, err := config.Load(configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.viper = v

	if !cfg.UI.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	c.logger = log.New(io.Discard, "", 0)
	if verbose || cfg.UI.Verbose {
		c.logger = log.New(c.errOut, "helpdesk: ", log.LstdFlags)
	}

	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			return err
		}
	}
	store := session.NewStore(sessionPath)
	if _, err := store.Load(); err != nil {
		return err
	}

	c.app = app.New(cfg, store, app.WithLogger(c.logger))
	return nil
}

// requireSession fails fast when no token is stored. The backend would
// reject the call anyway; this just gives a clearer message.
func (c *CLI) requireSession() error {
	if !c.app.Session().Active() {
		return fmt.Errorf("not logged in. Run 'helpdesk login' first")
	}
	return nil
}

// report prints the user-facing form of err and passes it up for the
// exit code. Backend details are shown verbatim, transport failures as
// a generic connectivity message.
func (c *CLI) report(err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(c.errOut, "Error: "+api.UserMessage(err))
	return err
}

// success prints a transient-style confirmation line.
func (c *CLI) success(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
