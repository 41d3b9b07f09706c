package attendance

import (
	"context"
)

// AttendanceService defines business logic for the attendance lifecycle.
// The acting employee comes from the request context's JWT claims.
type AttendanceService interface {
	// CheckIn opens today's record and classifies it present or late.
	CheckIn(ctx context.Context) (RecordResponse, error)

	// CheckOut closes today's record, computes total hours and applies
	// the half-day override.
	CheckOut(ctx context.Context) (RecordResponse, error)

	// TodayStatus returns today's record, or an empty response when the
	// employee has not checked in yet.
	TodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// GetMyAttendance retrieves the employee's history within a range.
	GetMyAttendance(ctx context.Context, filter HistoryFilter) ([]RecordResponse, error)

	// GetMySummary aggregates the employee's records for one month.
	GetMySummary(ctx context.Context, month string) (MonthlySummary, error)
}
