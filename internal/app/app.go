// Package app ties the client together: it owns the session lifecycle,
// drives role resolution, and implements the user-triggered flows on
// top of the API client. Both the CLI commands and the interactive TUI
// run through the same App so state has a single owner.
package app

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/helpdesk-io/helpdesk-cli/internal/api"
	"github.com/helpdesk-io/helpdesk-cli/internal/config"
	"github.com/helpdesk-io/helpdesk-cli/internal/models"
	"github.com/helpdesk-io/helpdesk-cli/internal/roles"
	"github.com/helpdesk-io/helpdesk-cli/internal/session"
	"github.com/helpdesk-io/helpdesk-cli/internal/view"
)

// App is the client's state owner. Constructed at startup, torn down
// at logout; everything in between mutates state only through its
// methods.
type App struct {
	api      *api.Client
	sessions *session.Store
	resolver *roles.Resolver
	logger   *log.Logger

	// staffMu guards the support-staff cache, the only client-side
	// cache the application keeps. Refreshed on every list fetch by a
	// role that can reassign.
	staffMu sync.Mutex
	staff   []models.SupportStaff
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// New constructs the App from configuration and a session store. The
// store doubles as the API client's token source, so a login in one
// place is immediately visible to every request.
func New(cfg *config.Config, store *session.Store, opts ...Option) *App {
	a := &App{
		sessions: store,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.api = api.NewClient(&api.Config{
		BaseURL:    cfg.API.BaseURL,
		Tokens:     store,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
		Debug:      cfg.API.Debug,
		Logger:     a.logger,
	})
	a.resolver = roles.NewResolver(a.api.Auth, roles.WithLogger(a.logger))
	return a
}

// API exposes the underlying client for flows that are plain
// passthroughs.
func (a *App) API() *api.Client {
	return a.api
}

// Session returns the current session.
func (a *App) Session() session.Session {
	return a.sessions.Current()
}

// Register creates an account. It does not log in; the caller follows
// with Login.
func (a *App) Register(ctx context.Context, email, password, roleName string) error {
	if roleName == "" {
		roleName = string(roles.RoleStudent)
	}
	return a.api.Auth.Register(ctx, api.RegisterRequest{
		Email:    email,
		Password: password,
		RoleName: roleName,
	})
}

// Login exchanges credentials for a token, resolves the role, and
// persists the full session. The submitted username is the identity
// until the profile endpoint says otherwise.
func (a *App) Login(ctx context.Context, username, password string) (session.Session, error) {
	token, err := a.api.Auth.Login(ctx, username, password)
	if err != nil {
		return session.Session{}, err
	}

	// The token must be current before Resolve: the profile call runs
	// through the same client and needs the bearer header.
	if err := a.sessions.Save(session.Session{Token: token, Identity: username}); err != nil {
		return session.Session{}, err
	}

	res := a.resolver.Resolve(ctx, token, username, "")
	sess := session.Session{Token: token, Identity: res.Identity, Role: string(res.Role)}
	if err := a.sessions.Save(sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Refresh re-resolves identity and role for the stored token, the
// page-load flow. On a rejected token the session is treated as absent
// and cleared; there is no automatic retry.
func (a *App) Refresh(ctx context.Context) (session.Session, error) {
	sess := a.sessions.Current()
	if !sess.Active() {
		return sess, nil
	}

	res := a.resolver.Resolve(ctx, sess.Token, sess.Identity, roles.Role(sess.Role))
	sess.Identity = res.Identity
	sess.Role = string(res.Role)
	if err := a.sessions.Save(sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Logout clears the persisted session. No server-side call is made;
// the client cannot revoke a token.
func (a *App) Logout() error {
	return a.sessions.Clear()
}

// clearOnReject drops the session when the backend rejects the token.
func (a *App) clearOnReject(err error) {
	if api.IsUnauthorized(err) {
		a.logger.Printf("token rejected by backend, clearing session")
		if clearErr := a.sessions.Clear(); clearErr != nil {
			a.logger.Printf("failed to clear session: %v", clearErr)
		}
	}
}

// FetchView loads the role-appropriate ticket list (and, for roles
// with a reassignment control, the support-staff list) and builds the
// view model. The rendered view always reflects this fetch and nothing
// else.
func (a *App) FetchView(ctx context.Context, filters view.Filters) (view.Model, error) {
	sess := a.sessions.Current()
	role := roles.Role(sess.Role)

	var (
		tickets []models.Ticket
		err     error
	)
	switch view.SourceForRole(role) {
	case view.SourceSupport:
		tickets, err = a.api.Tickets.Support(ctx)
	case view.SourceDepartment:
		tickets, err = a.api.Tickets.Department(ctx, api.ListFilters{
			Status:         filters.Status,
			SortByPriority: filters.SortByPriority,
		})
	case view.SourceAll:
		tickets, err = a.api.Tickets.All(ctx, api.ListFilters{
			Department:     filters.Department,
			Status:         filters.Status,
			SortByPriority: filters.SortByPriority,
		})
	default:
		tickets, err = a.api.Tickets.My(ctx)
	}
	if err != nil {
		a.clearOnReject(err)
		return view.Model{}, err
	}

	staff := a.refreshStaff(ctx, role)
	return view.Build(sess.Identity, role, tickets, staff, filters), nil
}

// refreshStaff reloads the support-staff cache for roles whose view
// renders the reassignment selector. Failures keep the previous cache;
// the selector is a convenience, not part of the ticket list.
func (a *App) refreshStaff(ctx context.Context, role roles.Role) []models.SupportStaff {
	a.staffMu.Lock()
	defer a.staffMu.Unlock()

	if role != roles.RoleAdmin && role != roles.RoleDepartment {
		return a.staff
	}
	staff, err := a.api.Tickets.SupportList(ctx)
	if err != nil {
		a.logger.Printf("support-list fetch failed, keeping cached list: %v", err)
		return a.staff
	}
	a.staff = staff
	return a.staff
}

// CreateTicket opens a new ticket.
func (a *App) CreateTicket(ctx context.Context, req api.CreateRequest) (*models.Ticket, error) {
	return a.api.Tickets.Create(ctx, req)
}

// Suggest fetches the non-binding department/priority recommendation.
func (a *App) Suggest(ctx context.Context, title, description string) (*models.Suggestion, error) {
	return a.api.Tickets.Suggest(ctx, title, description)
}

// Comment posts a comment on a ticket.
func (a *App) Comment(ctx context.Context, ticketID int, content string) error {
	return a.api.Tickets.AddComment(ctx, ticketID, content)
}

// AssignDepartment routes a ticket to a department (admin control).
func (a *App) AssignDepartment(ctx context.Context, ticketID int, department string) error {
	return a.api.Tickets.AssignDepartment(ctx, ticketID, department)
}

// ReassignSupport hands a ticket to a different support user.
func (a *App) ReassignSupport(ctx context.Context, ticketID, supportID int) error {
	return a.api.Tickets.ReassignSupport(ctx, ticketID, supportID)
}

// UpdateStatus moves a ticket to a new status.
func (a *App) UpdateStatus(ctx context.Context, ticketID int, status string) error {
	return a.api.Tickets.UpdateStatus(ctx, ticketID, status)
}
