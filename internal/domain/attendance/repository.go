package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// One record exists per (employee, date); Create must enforce that
// uniqueness so concurrent first check-ins serialize at the store and
// the loser observes ErrAlreadyCheckedIn.
type AttendanceRepository interface {
	// Create inserts the day's record. Returns ErrAlreadyCheckedIn when a
	// record for (employee, date) already exists.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDate returns ErrRecordNotFound when the day has no
	// record; callers treat that as "no data", not a failure.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// Update persists checkout fields (check-out time, total hours, status).
	Update(ctx context.Context, record Record) error

	// ListByEmployee returns one employee's records with date in [from, to],
	// newest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ListAll returns all employees' records with date in [from, to],
	// newest first, with roster fields joined.
	ListAll(ctx context.Context, from, to time.Time) ([]Record, error)

	// ListOpenBefore returns records still missing a check-out whose date
	// is on or before the cutoff. Feeds the stale-session close job.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Record, error)
}
