package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
	"github.com/tap-academy/attendance-backend-go/internal/domain/dashboard"
	"github.com/tap-academy/attendance-backend-go/internal/domain/employee"
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy attendance.Policy
	now    func() time.Time
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy attendance.Policy,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policy:               policy,
		now:                  time.Now,
	}
}

// GetManagerDashboard implements dashboard.DashboardService. The three
// source reads are independent, so they run concurrently.
func (d *DashboardServiceImpl) GetManagerDashboard(ctx context.Context) (dashboard.ManagerDashboardResponse, error) {
	today := d.policy.DateKey(d.now().UTC())
	weekStart := today.AddDate(0, 0, -6)

	var (
		totalEmployees int64
		weekRecords    []attendance.Record
		roster         []employee.Employee
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalEmployees, err = d.EmployeeRepository.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("failed to count active employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		weekRecords, err = d.AttendanceRepository.ListAll(gctx, weekStart, today)
		if err != nil {
			return fmt.Errorf("failed to list week records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		roster, err = d.EmployeeRepository.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("failed to list active employees: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.ManagerDashboardResponse{}, err
	}

	rosterIDs := make([]string, 0, len(roster))
	for _, emp := range roster {
		rosterIDs = append(rosterIDs, emp.ID)
	}

	todayStat := attendance.TeamDailyStats(weekRecords, today, rosterIDs)
	weekly := attendance.WeeklyOverview(weekRecords, weekStart, rosterIDs)

	return dashboard.ManagerDashboardResponse{
		TotalEmployees: totalEmployees,
		PresentCount:   todayStat.PresentCount,
		AbsentCount:    todayStat.AbsentCount,
		LateCount:      todayStat.LateCount,
		WeeklyStats:    weekly,
	}, nil
}
