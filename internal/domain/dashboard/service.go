package dashboard

import "context"

// DashboardService defines the manager dashboard aggregation.
type DashboardService interface {
	GetManagerDashboard(ctx context.Context) (ManagerDashboardResponse, error)
}
