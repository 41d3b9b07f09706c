package http

import (
	"log/slog"
	"net/http"

	"github.com/tap-academy/attendance-backend-go/internal/domain/dashboard"
	"github.com/tap-academy/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetManagerDashboard(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// GetManagerDashboard implements DashboardHandler.
func (d *DashboardHandlerImpl) GetManagerDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := d.dashboardService.GetManagerDashboard(r.Context())
	if err != nil {
		slog.Error("GetManagerDashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}
