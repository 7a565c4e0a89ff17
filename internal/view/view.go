// Package view builds the role-driven view model: given who is logged
// in and the most recent fetch results, it decides which section is
// visible and which controls each ticket carries. It is a pure
// function of its inputs; committing the result to a display surface
// is the adapter's job (Render here, or the interactive TUI).
package view

import (
	"github.com/helpdesk-io/helpdesk-cli/internal/models"
	"github.com/helpdesk-io/helpdesk-cli/internal/roles"
)

// Section identifies which of the four role sections is visible.
// Exactly one section is visible for a known role, none otherwise.
type Section string

const (
	SectionNone       Section = ""
	SectionStudent    Section = "student"
	SectionSupport    Section = "support"
	SectionDepartment Section = "department"
	SectionAdmin      Section = "admin"
)

// SectionForRole maps a role to its section by exact match. Unknown
// roles render no section.
func SectionForRole(role roles.Role) Section {
	switch role {
	case roles.RoleStudent:
		return SectionStudent
	case roles.RoleSupport:
		return SectionSupport
	case roles.RoleDepartment:
		return SectionDepartment
	case roles.RoleAdmin:
		return SectionAdmin
	}
	return SectionNone
}

// ListSource identifies which backend list a role fetches.
type ListSource int

const (
	// SourceMy lists tickets the caller created.
	SourceMy ListSource = iota
	// SourceSupport lists tickets assigned to the calling support user.
	SourceSupport
	// SourceDepartment lists the caller's department tickets.
	SourceDepartment
	// SourceAll lists every ticket, with optional admin filters.
	SourceAll
)

// SourceForRole returns the list endpoint a role renders from.
// Unknown roles fall back to the caller's own tickets, matching the
// default-route behavior of an absent role.
func SourceForRole(role roles.Role) ListSource {
	switch role {
	case roles.RoleSupport:
		return SourceSupport
	case roles.RoleDepartment:
		return SourceDepartment
	case roles.RoleAdmin:
		return SourceAll
	}
	return SourceMy
}

// ControlSet flags which actions are rendered for one ticket. The
// flags gate what the UI offers; the backend still enforces the
// permissions on every call.
type ControlSet struct {
	AssignDepartment bool
	ReassignSupport  bool
	UpdateStatus     bool
	CreatorInfo      bool
	Comment          bool
}

// ControlsFor computes the per-ticket control visibility for a role.
//
// Status updates: admin and department always; support only when the
// ticket already has a support assignment. A support user never sees
// the control on an unassigned ticket.
func ControlsFor(role roles.Role, ticket models.Ticket) ControlSet {
	isAdmin := role == roles.RoleAdmin
	isDepartment := role == roles.RoleDepartment
	isSupport := role == roles.RoleSupport

	return ControlSet{
		AssignDepartment: isAdmin,
		ReassignSupport:  isAdmin || isDepartment,
		UpdateStatus:     isAdmin || isDepartment || (isSupport && ticket.AssignedSupportID != nil),
		CreatorInfo:      isAdmin || isDepartment,
		Comment:          true,
	}
}

// Filters are the admin list filters, echoed into the view so the
// empty-state message can distinguish "nothing exists" from "nothing
// matches".
type Filters struct {
	Department     string
	Status         string
	SortByPriority bool
}

func (f Filters) active() bool {
	return f.Department != "" || f.Status != ""
}

// TicketView pairs a ticket with its rendered control set and the
// resolved creator line data.
type TicketView struct {
	Ticket   models.Ticket
	Controls ControlSet

	// CreatorLabel is the creator's role display label, populated only
	// when the creator-info line is visible and the backend embedded a
	// creator record.
	CreatorEmail string
	CreatorLabel string
}

// Model is the complete view state for one render cycle. It reflects
// exactly the most recent successful fetch; a failed mutation never
// changes it.
type Model struct {
	Section   Section
	RoleLabel string
	Identity  string

	Tickets []TicketView
	Staff   []models.SupportStaff
	Filters Filters

	// EmptyMessage is set when the ticket list is empty; the adapter
	// shows it instead of an empty container.
	EmptyMessage string
}

// Build assembles the view model for a render cycle. Tickets keep the
// backend's order; no client-side sorting or filtering happens here.
func Build(identity string, role roles.Role, tickets []models.Ticket, staff []models.SupportStaff, filters Filters) Model {
	m := Model{
		Section:   SectionForRole(role),
		RoleLabel: roles.Label(role),
		Identity:  identity,
		Staff:     staff,
		Filters:   filters,
	}

	for _, t := range tickets {
		tv := TicketView{
			Ticket:   t,
			Controls: ControlsFor(role, t),
		}
		if tv.Controls.CreatorInfo && t.CreatedByUser != nil {
			tv.CreatorEmail = t.CreatedByUser.Email
			tv.CreatorLabel = roles.LabelForID(t.CreatedByUser.RoleID)
		}
		m.Tickets = append(m.Tickets, tv)
	}

	if len(tickets) == 0 {
		if role == roles.RoleAdmin && filters.active() {
			m.EmptyMessage = "No tickets match the current filters."
		} else {
			m.EmptyMessage = "No tickets found."
		}
	}
	return m
}
