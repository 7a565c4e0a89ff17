// Package models holds the wire types exchanged with the helpdesk
// backend. The client never persists these; every render cycle works
// from a fresh fetch.
package models

import (
	"time"
)

// Ticket represents a support ticket as returned by the backend.
type Ticket struct {
	ID                   int       `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Status               string    `json:"status"`
	Priority             string    `json:"priority"`
	AssignedDepartmentID int       `json:"assigned_department_id"`
	CreatedByUserID      int       `json:"created_by_user_id"`
	CreatedByUser        *UserRef  `json:"created_by_user,omitempty"`
	AssignedSupportID    *int      `json:"assigned_support_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Comments             []Comment `json:"comments,omitempty"`
}

// UserRef is the abbreviated user record embedded in ticket responses.
type UserRef struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

// Comment represents a comment attached to a ticket.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SupportStaff is one entry of the reassignment selector list.
type SupportStaff struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// Profile is the authenticated user record from the profile endpoint.
type Profile struct {
	Email string `json:"email"`
	Role  struct {
		Name string `json:"name"`
	} `json:"role"`
}

// Suggestion is the backend's non-binding department/priority
// recommendation for a ticket draft.
type Suggestion struct {
	Department string `json:"department"`
	Priority   string `json:"priority"`
}

// Ticket status values accepted by the backend.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

// Statuses lists the valid ticket statuses in workflow order.
func Statuses() []string {
	return []string{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// Priorities lists the ticket priorities the backend accepts on create.
func Priorities() []string {
	return []string{"Low", "Medium", "High"}
}
