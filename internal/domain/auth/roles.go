package auth

import "strings"

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

var Roles = []string{RoleEmployee, RoleHR, RoleAdmin}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   string
}

// Privileged reports whether the actor may act on behalf of other employees.
func (a Actor) Privileged() bool {
	return a.Role == RoleHR || a.Role == RoleAdmin
}

func ValidRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, candidate := range Roles {
		if role == candidate {
			return true
		}
	}
	return false
}
