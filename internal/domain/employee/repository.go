package employee

import "context"

// EmployeeRepository is the roster source. ListActive feeds absent-day
// inference: an active employee with no record for a date counts as absent.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	CountActive(ctx context.Context) (int64, error)
}
