package employees

import (
	"strings"

	"dayflow/internal/domain/auth"
)

// ApplyUpdate merges in into emp. Department, position and role changes need
// the assign permission; the caller checks it before calling.
func ApplyUpdate(emp *Employee, in UpdateInput) error {
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) != "" {
		emp.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil && strings.TrimSpace(*in.LastName) != "" {
		emp.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		emp.Phone = optional(*in.Phone)
	}
	if in.Address != nil {
		emp.Address = optional(*in.Address)
	}
	if in.Avatar != nil {
		emp.Avatar = optional(*in.Avatar)
	}
	if in.Department != nil && strings.TrimSpace(*in.Department) != "" {
		emp.Department = strings.TrimSpace(*in.Department)
	}
	if in.Position != nil && strings.TrimSpace(*in.Position) != "" {
		emp.Position = strings.TrimSpace(*in.Position)
	}
	if in.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*in.Role))
		if !auth.ValidRole(role) {
			return ErrInvalidRole
		}
		emp.Role = role
	}
	return nil
}

// TouchesAssignment reports whether the update changes organisational fields.
func (in UpdateInput) TouchesAssignment() bool {
	return in.Department != nil || in.Position != nil || in.Role != nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
