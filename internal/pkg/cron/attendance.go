package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs closes records whose owner forgot to check out.
// Absence is never materialized here: a day with no check-in stays
// recordless and is derived from the roster at query time.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	policy         attendance.Policy
	autoCloseAfter time.Duration
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	policy attendance.Policy,
	autoCloseAfterHours int,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		policy:         policy,
		autoCloseAfter: time.Duration(autoCloseAfterHours) * time.Hour,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_sessions", 1*time.Hour, j.CloseStaleSessions)
}

// CloseStaleSessions finds records that are still open well past the
// end of their local day and closes them at that day's end. Worked
// hours and the half-day override follow the normal checkout rules.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	// A session is stale once its day ended autoCloseAfter ago.
	cutoffDay := j.policy.DateKey(j.now().Add(-j.autoCloseAfter).AddDate(0, 0, -1))

	stale, err := j.attendanceRepo.ListOpenBefore(ctx, cutoffDay)
	if err != nil {
		return fmt.Errorf("failed to list stale open sessions: %w", err)
	}

	closedCount := 0
	for _, record := range stale {
		if record.CheckInTime == nil {
			continue
		}

		// Stored dates decode as UTC midnight; rebuild the organization
		// day from the calendar components before taking its end.
		closeAt := j.policy.EndOfDay(j.policy.DayOf(record.Date)).UTC()
		if closeAt.Before(*record.CheckInTime) {
			// Clock skew between the stored instant and the date key;
			// leave it for manual correction rather than write negative hours.
			slog.Warn("Cron: Skipping stale session with check-in past end of day",
				"record_id", record.ID,
				"employee_id", record.EmployeeID)
			continue
		}

		record.CheckOutTime = &closeAt
		record.TotalHours = attendance.HoursBetween(*record.CheckInTime, closeAt)
		if j.policy.IsHalfDay(record.TotalHours) {
			record.Status = attendance.StatusHalfDay
		}

		if err := j.attendanceRepo.Update(ctx, record); err != nil {
			slog.Error("Cron: Failed to close stale session",
				"record_id", record.ID,
				"employee_id", record.EmployeeID,
				"error", err)
			continue
		}
		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Closed stale attendance sessions", "count", closedCount)
	}
	return nil
}
