package employee

import "time"

// Employee is the roster entry consumed read-only by aggregation and
// reports. Account data (email, password) lives on the user entity.
type Employee struct {
	ID         string
	Code       string // human-facing identifier, e.g. "EMP001"
	FullName   string
	Department string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
