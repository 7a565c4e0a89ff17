package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xeonx/timeago"

	"github.com/helpdesk-io/helpdesk-cli/internal/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	commentStyle = lipgloss.NewStyle().PaddingLeft(4)

	statusStyles = map[string]lipgloss.Style{
		models.StatusOpen:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.StatusResolved:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		models.StatusClosed:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}

	priorityStyles = map[string]lipgloss.Style{
		"High":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		"Medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"Low":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func styleStatus(status string) string {
	if s, ok := statusStyles[status]; ok {
		return s.Render(status)
	}
	return status
}

func stylePriority(priority string) string {
	if s, ok := priorityStyles[priority]; ok {
		return s.Render(priority)
	}
	return priority
}

// controlHints lists the actions available on a ticket as command
// hints, mirroring the buttons the role would see.
func controlHints(id int, c ControlSet) []string {
	var hints []string
	if c.AssignDepartment {
		hints = append(hints, fmt.Sprintf("tickets assign-department %d", id))
	}
	if c.ReassignSupport {
		hints = append(hints, fmt.Sprintf("tickets reassign-support %d", id))
	}
	if c.UpdateStatus {
		hints = append(hints, fmt.Sprintf("tickets status %d", id))
	}
	if c.Comment {
		hints = append(hints, fmt.Sprintf("tickets comment %d", id))
	}
	return hints
}

// Render commits a view model to plain styled text for non-interactive
// output. It is the thin adapter over Build: no visibility decisions
// happen here.
func Render(m Model) string {
	var b strings.Builder

	if m.Section == SectionNone {
		b.WriteString(emptyStyle.Render("No view available for this role."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s — %s", m.Identity, m.RoleLabel)))
	b.WriteString("\n\n")

	if m.EmptyMessage != "" {
		b.WriteString(emptyStyle.Render(m.EmptyMessage))
		b.WriteString("\n")
		return b.String()
	}

	for _, tv := range m.Tickets {
		t := tv.Ticket
		b.WriteString(titleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Status: %s   Priority: %s   Created: %s\n",
			styleStatus(t.Status), stylePriority(t.Priority), timeago.English.Format(t.CreatedAt)))
		if t.Description != "" {
			b.WriteString(fmt.Sprintf("  %s\n", t.Description))
		}
		if tv.Controls.CreatorInfo && tv.CreatorEmail != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  Created by %s (%s)", tv.CreatorEmail, tv.CreatorLabel)))
			b.WriteString("\n")
		}
		if t.AssignedSupportID != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  Assigned support: #%d", *t.AssignedSupportID)))
			b.WriteString("\n")
		}
		for _, comment := range t.Comments {
			b.WriteString(commentStyle.Render(fmt.Sprintf("- %s (%s)", comment.Content, timeago.English.Format(comment.CreatedAt))))
			b.WriteString("\n")
		}
		if hints := controlHints(t.ID, tv.Controls); len(hints) > 0 {
			b.WriteString(dimStyle.Render("  Actions: " + strings.Join(hints, " | ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.Staff) > 0 {
		b.WriteString(headerStyle.Render("Support staff"))
		b.WriteString("\n")
		for _, s := range m.Staff {
			b.WriteString(fmt.Sprintf("  %d: %s\n", s.ID, s.Email))
		}
	}

	return b.String()
}
