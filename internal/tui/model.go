// Package tui is the interactive terminal adapter over the view
// model. It renders the same role-driven view the CLI prints, adds
// cursor navigation, and runs each mutation as an asynchronous command
// followed by a full re-fetch. State changes only ever come from a
// completed fetch; a failed mutation leaves the list untouched.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helpdesk-io/helpdesk-cli/internal/api"
	"github.com/helpdesk-io/helpdesk-cli/internal/app"
	"github.com/helpdesk-io/helpdesk-cli/internal/view"
)

// noticeFadeDelay is how long a transient banner stays visible.
const noticeFadeDelay = 3 * time.Second

// mode identifies where keyboard input routes.
type mode int

const (
	// modeList means keys navigate the ticket list.
	modeList mode = iota
	// modeInput means keystrokes go to the prompt line until enter
	// submits or escape cancels.
	modeInput
)

// promptKind identifies which action the prompt line is collecting
// input for.
type promptKind int

const (
	promptComment promptKind = iota
	promptStatus
	promptAssignDept
	promptReassign
)

// viewLoadedMsg delivers a completed fetch.
type viewLoadedMsg struct {
	vm view.Model
}

// fetchFailedMsg delivers a failed fetch or mutation.
type fetchFailedMsg struct {
	err error
}

// mutationDoneMsg is sent when a mutation succeeds; the follow-up
// fetch is already on its way.
type mutationDoneMsg struct {
	notice string
}

// noticeFadeMsg clears the transient banner.
type noticeFadeMsg struct{}

var (
	tuiHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	noticeOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Model is the bubbletea model for the interactive ticket view.
type Model struct {
	app     *app.App
	keys    keyMap
	filters view.Filters

	vm      view.Model
	cursor  int
	loading bool

	mode   mode
	prompt promptKind
	input  textinput.Model

	notice    string
	noticeErr bool

	width  int
	height int
}

// NewModel creates the interactive model. Filters apply to admin
// sessions and are forwarded to every fetch.
func NewModel(a *app.App, filters view.Filters) Model {
	input := textinput.New()
	input.CharLimit = 1000
	return Model{
		app:     a,
		keys:    defaultKeyMap(),
		filters: filters,
		input:   input,
		loading: true,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		vm, err := m.app.FetchView(context.Background(), m.filters)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return viewLoadedMsg{vm: vm}
	}
}

func noticeFadeCmd() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// selected returns the ticket under the cursor, or nil when the list
// is empty.
func (m Model) selected() *view.TicketView {
	if m.cursor < 0 || m.cursor >= len(m.vm.Tickets) {
		return nil
	}
	return &m.vm.Tickets[m.cursor]
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case viewLoadedMsg:
		m.vm = msg.vm
		m.loading = false
		if m.cursor >= len(m.vm.Tickets) {
			m.cursor = len(m.vm.Tickets) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case fetchFailedMsg:
		m.loading = false
		m.notice = api.UserMessage(msg.err)
		m.noticeErr = true
		return m, noticeFadeCmd()

	case mutationDoneMsg:
		m.notice = msg.notice
		m.noticeErr = false
		return m, tea.Batch(m.fetchCmd(), noticeFadeCmd())

	case noticeFadeMsg:
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.vm.Tickets)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.fetchCmd()

	case key.Matches(msg, m.keys.Comment):
		if tv := m.selected(); tv != nil && tv.Controls.Comment {
			return m.openPrompt(promptComment, "Comment: "), nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Status):
		if tv := m.selected(); tv != nil && tv.Controls.UpdateStatus {
			return m.openPrompt(promptStatus, "New status (Open, In Progress, Resolved, Closed): "), nil
		}
		return m, nil

	case key.Matches(msg, m.keys.AssignDept):
		if tv := m.selected(); tv != nil && tv.Controls.AssignDepartment {
			return m.openPrompt(promptAssignDept, "Department name: "), nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Reassign):
		tv := m.selected()
		if tv == nil || !tv.Controls.ReassignSupport {
			return m, nil
		}
		if len(m.vm.Staff) == 0 {
			m.notice = "No support staff available."
			m.noticeErr = true
			return m, noticeFadeCmd()
		}
		return m.openPrompt(promptReassign, "Support staff ID: "), nil
	}

	return m, nil
}

func (m Model) openPrompt(kind promptKind, placeholder string) Model {
	m.mode = modeInput
	m.prompt = kind
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = modeList
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		return m, m.submitCmd(m.prompt, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitCmd runs the mutation for the prompt input. Every success is
// followed by a full re-fetch; nothing is applied locally.
func (m Model) submitCmd(kind promptKind, value string) tea.Cmd {
	tv := m.selected()
	if tv == nil {
		return nil
	}
	ticketID := tv.Ticket.ID

	return func() tea.Msg {
		ctx := context.Background()
		switch kind {
		case promptComment:
			if err := m.app.Comment(ctx, ticketID, value); err != nil {
				return fetchFailedMsg{err: err}
			}
			return mutationDoneMsg{notice: "Comment added."}

		case promptStatus:
			if err := m.app.UpdateStatus(ctx, ticketID, value); err != nil {
				return fetchFailedMsg{err: err}
			}
			return mutationDoneMsg{notice: fmt.Sprintf("Ticket #%d moved to %s.", ticketID, value)}

		case promptAssignDept:
			if err := m.app.AssignDepartment(ctx, ticketID, value); err != nil {
				return fetchFailedMsg{err: err}
			}
			return mutationDoneMsg{notice: fmt.Sprintf("Ticket #%d assigned to %s.", ticketID, value)}

		case promptReassign:
			supportID, err := strconv.Atoi(value)
			if err != nil {
				return fetchFailedMsg{err: fmt.Errorf("support staff ID must be a number")}
			}
			if err := m.app.ReassignSupport(ctx, ticketID, supportID); err != nil {
				return fetchFailedMsg{err: err}
			}
			return mutationDoneMsg{notice: fmt.Sprintf("Ticket #%d reassigned.", ticketID)}
		}
		return nil
	}
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("Helpdesk — %s (%s)", m.vm.Identity, m.vm.RoleLabel)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(helpStyle.Render("Loading tickets..."))
		b.WriteString("\n")

	case m.vm.EmptyMessage != "":
		b.WriteString(helpStyle.Render(m.vm.EmptyMessage))
		b.WriteString("\n")

	default:
		for i, tv := range m.vm.Tickets {
			line := fmt.Sprintf("#%d  %-40s  %-12s  %s", tv.Ticket.ID, truncate(tv.Ticket.Title, 40), tv.Ticket.Status, tv.Ticket.Priority)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if tv := m.selected(); tv != nil {
			b.WriteString("\n")
			b.WriteString(m.detailView(tv))
		}
	}

	b.WriteString("\n")
	if m.mode == modeInput {
		b.WriteString(promptStyle.Render(m.input.Placeholder))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if m.notice != "" {
		style := noticeOKStyle
		if m.noticeErr {
			style = noticeErrStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render(m.helpLine()))
		b.WriteString("\n")
	}

	return b.String()
}

// detailView shows the selected ticket's description, creator line,
// and comments.
func (m Model) detailView(tv *view.TicketView) string {
	var b strings.Builder
	t := tv.Ticket

	if t.Description != "" {
		b.WriteString("  " + t.Description + "\n")
	}
	if tv.Controls.CreatorInfo && tv.CreatorEmail != "" {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  Created by %s (%s)", tv.CreatorEmail, tv.CreatorLabel)))
		b.WriteString("\n")
	}
	for _, c := range t.Comments {
		b.WriteString(fmt.Sprintf("    - %s\n", c.Content))
	}
	return b.String()
}

// helpLine lists the bindings usable on the selected ticket.
func (m Model) helpLine() string {
	parts := []string{
		m.keys.Up.Help().Key + "/" + m.keys.Down.Help().Key + " move",
		m.keys.Refresh.Help().Key + " " + m.keys.Refresh.Help().Desc,
	}
	if tv := m.selected(); tv != nil {
		if tv.Controls.Comment {
			parts = append(parts, m.keys.Comment.Help().Key+" "+m.keys.Comment.Help().Desc)
		}
		if tv.Controls.UpdateStatus {
			parts = append(parts, m.keys.Status.Help().Key+" "+m.keys.Status.Help().Desc)
		}
		if tv.Controls.AssignDepartment {
			parts = append(parts, m.keys.AssignDept.Help().Key+" "+m.keys.AssignDept.Help().Desc)
		}
		if tv.Controls.ReassignSupport {
			parts = append(parts, m.keys.Reassign.Help().Key+" "+m.keys.Reassign.Help().Desc)
		}
	}
	parts = append(parts, m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc)
	return strings.Join(parts, "  ·  ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
