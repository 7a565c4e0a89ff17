package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/helpdesk-io/helpdesk-cli/internal/models"
)

// TicketsService handles ticket listing, creation, and the per-ticket
// mutation endpoints.
type TicketsService struct {
	client *Client
}

// ListFilters narrows the admin and department list endpoints. Empty
// fields are omitted from the query string.
type ListFilters struct {
	Department     string
	Status         string
	SortByPriority bool
}

func (f ListFilters) encode(includeDepartment bool) string {
	query := url.Values{}
	if includeDepartment && f.Department != "" {
		query.Set("department_filter", f.Department)
	}
	if f.Status != "" {
		query.Set("status_filter", f.Status)
	}
	if f.SortByPriority {
		query.Set("sort_by_priority", "true")
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}

// My retrieves the tickets the caller created.
func (s *TicketsService) My(ctx context.Context) ([]models.Ticket, error) {
	var result []models.Ticket
	err := s.client.Get(ctx, "/tickets/my", &result)
	return result, err
}

// Support retrieves the tickets assigned to the calling support user.
func (s *TicketsService) Support(ctx context.Context) ([]models.Ticket, error) {
	var result []models.Ticket
	err := s.client.Get(ctx, "/tickets/support", &result)
	return result, err
}

// Department retrieves the tickets of the caller's department. The
// department filter does not apply here; the backend scopes by the
// caller's own department.
func (s *TicketsService) Department(ctx context.Context, filters ListFilters) ([]models.Ticket, error) {
	var result []models.Ticket
	err := s.client.Get(ctx, "/tickets/department"+filters.encode(false), &result)
	return result, err
}

// All retrieves every ticket, admin only. Filters are forwarded
// verbatim as query parameters.
func (s *TicketsService) All(ctx context.Context, filters ListFilters) ([]models.Ticket, error) {
	var result []models.Ticket
	err := s.client.Get(ctx, "/tickets/"+filters.encode(true), &result)
	return result, err
}

// CreateRequest is the body for opening a new ticket.
type CreateRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	DepartmentName string `json:"department_name"`
	Priority       string `json:"priority"`
}

// Create opens a new ticket and returns the created record.
func (s *TicketsService) Create(ctx context.Context, req CreateRequest) (*models.Ticket, error) {
	var result models.Ticket
	if err := s.client.Post(ctx, "/tickets/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Suggest asks the backend for a department/priority recommendation
// for a ticket draft. The result is non-binding; the caller may copy
// it into a create request or ignore it.
func (s *TicketsService) Suggest(ctx context.Context, title, description string) (*models.Suggestion, error) {
	var result models.Suggestion
	err := s.client.Post(ctx, "/tickets/suggest", suggestRequest{Title: title, Description: description}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SupportList retrieves the support staff available for reassignment.
func (s *TicketsService) SupportList(ctx context.Context) ([]models.SupportStaff, error) {
	var result []models.SupportStaff
	err := s.client.Get(ctx, "/tickets/support-list", &result)
	return result, err
}

// AssignDepartment routes a ticket to a department, admin only. The
// backend takes the department as a query parameter on this endpoint.
func (s *TicketsService) AssignDepartment(ctx context.Context, ticketID int, departmentName string) error {
	path := fmt.Sprintf("/tickets/%d/assign-department?department_name=%s", ticketID, url.QueryEscape(departmentName))
	return s.client.Put(ctx, path, nil, nil)
}

type reassignSupportRequest struct {
	NewSupportID int `json:"new_support_id"`
}

// ReassignSupport hands a ticket to a different support user.
func (s *TicketsService) ReassignSupport(ctx context.Context, ticketID, newSupportID int) error {
	path := fmt.Sprintf("/tickets/%d/reassign-support", ticketID)
	return s.client.Put(ctx, path, reassignSupportRequest{NewSupportID: newSupportID}, nil)
}

type updateStatusRequest struct {
	NewStatus string `json:"new_status"`
}

// UpdateStatus moves a ticket to a new workflow status.
func (s *TicketsService) UpdateStatus(ctx context.Context, ticketID int, newStatus string) error {
	path := fmt.Sprintf("/tickets/%d/status", ticketID)
	return s.client.Put(ctx, path, updateStatusRequest{NewStatus: newStatus}, nil)
}

type commentRequest struct {
	Content string `json:"content"`
}

// AddComment posts a comment on a ticket. Comments come back embedded
// in the next list fetch; nothing is appended locally.
func (s *TicketsService) AddComment(ctx context.Context, ticketID int, content string) error {
	path := fmt.Sprintf("/tickets/%d/comment", ticketID)
	return s.client.Post(ctx, path, commentRequest{Content: content}, nil)
}
