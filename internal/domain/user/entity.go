package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Team views, reports, exports
	RoleEmployee Role = "employee" // Own attendance only
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   string // references the employee this account belongs to
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if user can access team-wide views
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
