// Package roles defines the four helpdesk roles and resolves which one
// the current session holds.
package roles

// Role is the name of a backend role. Roles gate which ticket list a
// session fetches and which per-ticket controls it may use; the backend
// remains the authority for every mutation.
type Role string

const (
	RoleStudent    Role = "student"
	RoleSupport    Role = "support"
	RoleDepartment Role = "department"
	RoleAdmin      Role = "admin"
)

// All returns the known roles in registration order.
func All() []Role {
	return []Role{RoleStudent, RoleSupport, RoleDepartment, RoleAdmin}
}

// Known reports whether r matches one of the four backend roles.
// Unknown roles render no role section at all.
func Known(r Role) bool {
	switch r {
	case RoleStudent, RoleSupport, RoleDepartment, RoleAdmin:
		return true
	}
	return false
}

var roleLabels = map[Role]string{
	RoleStudent:    "Student",
	RoleSupport:    "Support Staff",
	RoleDepartment: "Department Manager",
	RoleAdmin:      "Administrator",
}

// Label returns the display label for a role. Unmapped roles are
// returned unchanged so the UI still shows something meaningful.
func Label(r Role) string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// Backend role IDs as seeded by the server database.
var roleIDLabels = map[int]string{
	1: "Student",
	2: "Support Staff",
	3: "Department Manager",
	4: "Administrator",
}

// LabelForID maps a numeric role ID from an embedded user record to its
// display label. IDs outside the seeded range show a placeholder.
func LabelForID(id int) string {
	if label, ok := roleIDLabels[id]; ok {
		return label
	}
	return "Unknown Role"
}
