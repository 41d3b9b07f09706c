package dashboard

import (
	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
)

// ManagerDashboardResponse is the team overview: today's snapshot plus
// the trailing seven-day breakdown.
type ManagerDashboardResponse struct {
	TotalEmployees int64                      `json:"total_employees"`
	PresentCount   int                        `json:"present_count"`
	AbsentCount    int                        `json:"absent_count"`
	LateCount      int                        `json:"late_count"`
	WeeklyStats    []attendance.DailyTeamStat `json:"weekly_stats"`
}
