package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
	"github.com/tap-academy/attendance-backend-go/internal/domain/employee"
)

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Record) error { return nil }

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListAll(_ context.Context, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, _ time.Time) ([]attendance.Record, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Code == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Active {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) CountActive(_ context.Context) (int64, error) {
	active, _ := f.ListActive(context.Background())
	return int64(len(active)), nil
}

func record(employeeID string, date time.Time, status attendance.Status) attendance.Record {
	in := date.Add(9 * time.Hour)
	return attendance.Record{
		ID:          employeeID + "-" + date.Format("2006-01-02"),
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: &in,
		TotalHours:  decimal.Zero,
		Status:      status,
	}
}

func TestGetManagerDashboard(t *testing.T) {
	// Monday March 9, with a seeded week behind it.
	now := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	attendanceRepo := &fakeAttendanceRepo{records: []attendance.Record{
		record("emp-1", today, attendance.StatusPresent),
		record("emp-2", today, attendance.StatusLate),
		record("emp-3", today, attendance.StatusHalfDay),
		record("emp-1", yesterday, attendance.StatusPresent),
	}}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", Code: "EMP001", Active: true},
		{ID: "emp-2", Code: "EMP002", Active: true},
		{ID: "emp-3", Code: "EMP003", Active: true},
		{ID: "emp-4", Code: "EMP004", Active: true},
		{ID: "emp-5", Code: "EMP005", Active: false},
	}}

	policy, err := attendance.NewPolicy("09:00", 10, 4.0, "UTC")
	require.NoError(t, err)

	svc := &DashboardServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policy:               policy,
		now:                  func() time.Time { return now },
	}

	resp, err := svc.GetManagerDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.TotalEmployees)
	// Half-day counts as attended; emp-4 has no record and is absent.
	assert.Equal(t, 2, resp.PresentCount)
	assert.Equal(t, 1, resp.LateCount)
	assert.Equal(t, 1, resp.AbsentCount)

	require.Len(t, resp.WeeklyStats, 7)
	assert.True(t, resp.WeeklyStats[0].Date.Before(resp.WeeklyStats[6].Date))
	assert.True(t, resp.WeeklyStats[6].Date.Equal(today))
	assert.Equal(t, "Monday", resp.WeeklyStats[6].Name)

	// Yesterday: one present, three active with no record.
	sunday := resp.WeeklyStats[5]
	assert.Equal(t, 1, sunday.PresentCount)
	assert.Equal(t, 3, sunday.AbsentCount)

	// A day with no records at all still appears, fully absent.
	tuesday := resp.WeeklyStats[0]
	assert.Equal(t, 0, tuesday.PresentCount)
	assert.Equal(t, 4, tuesday.AbsentCount)
}
