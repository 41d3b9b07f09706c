package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Record // keyed by employeeID + "|" + date
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	k := f.key(record.EmployeeID, record.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[k] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	record, ok := f.records[f.key(employeeID, date)]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Record) error {
	k := f.key(record.EmployeeID, record.Date)
	if _, ok := f.records[k]; !ok {
		return attendance.ErrRecordNotFound
	}
	f.records[k] = record
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID != employeeID {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListAll(_ context.Context, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, cutoff time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.CheckInTime != nil && r.CheckOutTime == nil && !r.Date.After(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": employeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func testPolicy(t *testing.T) attendance.Policy {
	t.Helper()
	policy, err := attendance.NewPolicy("09:00", 10, 4.0, "UTC")
	require.NoError(t, err)
	return policy
}

func newTestService(t *testing.T, repo *fakeAttendanceRepo, now time.Time) *AttendanceServiceImpl {
	t.Helper()
	svc := &AttendanceServiceImpl{
		AttendanceRepository: repo,
		policy:               testPolicy(t),
		now:                  func() time.Time { return now },
	}
	return svc
}

func TestCheckInClassification(t *testing.T) {
	tests := []struct {
		name       string
		checkInAt  time.Time
		wantStatus attendance.Status
	}{
		{
			name:       "before expected start is present",
			checkInAt:  time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC),
			wantStatus: attendance.StatusPresent,
		},
		{
			name:       "within grace period is present",
			checkInAt:  time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC),
			wantStatus: attendance.StatusPresent,
		},
		{
			name:       "exactly at deadline is present",
			checkInAt:  time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC),
			wantStatus: attendance.StatusPresent,
		},
		{
			name:       "one second past deadline is late",
			checkInAt:  time.Date(2026, 3, 2, 9, 10, 1, 0, time.UTC),
			wantStatus: attendance.StatusLate,
		},
		{
			name:       "mid-morning is late",
			checkInAt:  time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC),
			wantStatus: attendance.StatusLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAttendanceRepo()
			svc := newTestService(t, repo, tt.checkInAt)
			ctx := authedContext(t, "emp-1")

			resp, err := svc.CheckIn(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.checkInAt.Format("2006-01-02"), resp.Date)
			require.NotNil(t, resp.CheckInTime)
			assert.Nil(t, resp.CheckOutTime)
		})
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, now)
	ctx := authedContext(t, "emp-1")

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOutComputesHoursAndHalfDay(t *testing.T) {
	tests := []struct {
		name       string
		checkInAt  time.Time
		checkOutAt time.Time
		wantHours  string
		wantStatus attendance.Status
	}{
		{
			name:       "full day keeps check-in status",
			checkInAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			checkOutAt: time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC),
			wantHours:  "8.5",
			wantStatus: attendance.StatusPresent,
		},
		{
			name:       "short day overrides to half-day",
			checkInAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			checkOutAt: time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC),
			wantHours:  "2.5",
			wantStatus: attendance.StatusHalfDay,
		},
		{
			name:       "late check-in with short day becomes half-day",
			checkInAt:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			checkOutAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
			wantHours:  "2",
			wantStatus: attendance.StatusHalfDay,
		},
		{
			name:       "exactly the threshold is not half-day",
			checkInAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			checkOutAt: time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
			wantHours:  "4",
			wantStatus: attendance.StatusPresent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAttendanceRepo()
			ctx := authedContext(t, "emp-1")

			_, err := newTestService(t, repo, tt.checkInAt).CheckIn(ctx)
			require.NoError(t, err)

			resp, err := newTestService(t, repo, tt.checkOutAt).CheckOut(ctx)
			require.NoError(t, err)

			want, parseErr := decimal.NewFromString(tt.wantHours)
			require.NoError(t, parseErr)
			assert.True(t, resp.TotalHours.Equal(want), "got %s, want %s", resp.TotalHours, want)
			assert.Equal(t, tt.wantStatus, resp.Status)
			require.NotNil(t, resp.CheckOutTime)
		})
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, now)

	_, err := svc.CheckOut(authedContext(t, "emp-1"))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ctx := authedContext(t, "emp-1")

	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := newTestService(t, repo, checkIn).CheckIn(ctx)
	require.NoError(t, err)

	checkOut := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, checkOut)
	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutBeforeCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ctx := authedContext(t, "emp-1")

	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := newTestService(t, repo, checkIn).CheckIn(ctx)
	require.NoError(t, err)

	// Clock regression: the observed checkout instant predates check-in.
	earlier := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	_, err = newTestService(t, repo, earlier).CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeOrder)
}

func TestTodayStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, now)
	ctx := authedContext(t, "emp-1")

	status, err := svc.TodayStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)
	assert.Nil(t, status.Record)

	_, err = svc.CheckIn(ctx)
	require.NoError(t, err)

	status, err = svc.TodayStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	require.NotNil(t, status.Record)
	assert.Equal(t, attendance.StatusPresent, status.Record.Status)
}

func TestGetMySummary(t *testing.T) {
	repo := newFakeAttendanceRepo()
	loc := time.UTC

	seed := func(day int, status attendance.Status, hours string) {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, loc)
		in := date.Add(9 * time.Hour)
		h, err := decimal.NewFromString(hours)
		require.NoError(t, err)
		repo.records[repo.key("emp-1", date)] = attendance.Record{
			ID:          "seed",
			EmployeeID:  "emp-1",
			Date:        date,
			CheckInTime: &in,
			TotalHours:  h,
			Status:      status,
		}
	}

	seed(2, attendance.StatusPresent, "8")
	seed(3, attendance.StatusLate, "7.5")
	seed(4, attendance.StatusHalfDay, "2.5")
	seed(5, attendance.StatusPresent, "8")

	now := time.Date(2026, 3, 31, 18, 0, 0, 0, loc)
	svc := newTestService(t, repo, now)

	summary, err := svc.GetMySummary(authedContext(t, "emp-1"), "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.HalfDay)
	assert.Equal(t, 0, summary.Absent)
	assert.True(t, summary.TotalHours.Equal(decimal.RequireFromString("26")), "got %s", summary.TotalHours)
}

func TestGetMyAttendanceRange(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ctx := authedContext(t, "emp-1")

	for day := 2; day <= 6; day++ {
		checkIn := time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
		_, err := newTestService(t, repo, checkIn).CheckIn(ctx)
		require.NoError(t, err)
	}

	now := time.Date(2026, 3, 6, 18, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, now)

	start := "2026-03-03"
	end := "2026-03-05"
	records, err := svc.GetMyAttendance(ctx, attendance.HistoryFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = svc.GetMyAttendance(ctx, attendance.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestGetMyAttendanceEndDateOnly(t *testing.T) {
	repo := newFakeAttendanceRepo()
	ctx := authedContext(t, "emp-1")

	checkIn := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	_, err := newTestService(t, repo, checkIn).CheckIn(ctx)
	require.NoError(t, err)

	// Months later, an end bound alone must still reach the old record
	// instead of being pinned to the trailing default window.
	svc := newTestService(t, repo, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))

	end := "2026-01-31"
	records, err := svc.GetMyAttendance(ctx, attendance.HistoryFilter{EndDate: &end})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-01-10", records[0].Date)
}

func TestGetMyAttendanceRejectsBadRange(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(t, repo, time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC))

	start := "2026-03-05"
	end := "2026-03-01"
	_, err := svc.GetMyAttendance(authedContext(t, "emp-1"), attendance.HistoryFilter{StartDate: &start, EndDate: &end})
	assert.Error(t, err)
}

func TestDateKeyUsesOrgTimezone(t *testing.T) {
	policy, err := attendance.NewPolicy("09:00", 10, 4.0, "Asia/Jakarta")
	require.NoError(t, err)

	repo := newFakeAttendanceRepo()
	// 18:00 UTC on March 2 is already 01:00 March 3 in Jakarta.
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	svc := &AttendanceServiceImpl{
		AttendanceRepository: repo,
		policy:               policy,
		now:                  func() time.Time { return now },
	}

	resp, err := svc.CheckIn(authedContext(t, "emp-1"))
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", resp.Date)
}
