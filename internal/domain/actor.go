package domain

import "strconv"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Actor is the authenticated caller resolved from the access token.
type Actor struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Role         string `json:"role"`
	Department   string `json:"department"`
}

func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }
func (a Actor) IsManager() bool { return a.Role == RoleManager }

func (a Actor) IDString() string {
	return strconv.FormatInt(a.ID, 10)
}

func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}
