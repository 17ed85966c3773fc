package constants

import "fmt"

// Role is the closed set of account roles. Route gating and role-dependent
// behavior switch on this type; raw string comparison is not used anywhere else.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "emp"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// HomePath is where a freshly authenticated user of this role lands.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/home"
	default:
		return "/home"
	}
}

// Role error message templates
const (
	ErrOnlyAdminsCanAccess = "❌ Only admins may access %s."
	ErrLoginRequired       = "Login is required to access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleAdmin,
		RoleEmployee,
	}

	AdminOnly = []Role{
		RoleAdmin,
	}

	EmployeeOnly = []Role{
		RoleEmployee,
	}
)
