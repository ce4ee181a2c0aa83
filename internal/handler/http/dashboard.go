package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
)

type DashboardHandler interface {
	// GetDashboard returns the view matching the caller's role
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetEmployeeDashboard returns today's status, month summary and recent records
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
	// GetManagerDashboard returns organization-wide figures
	GetManagerDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	clock            clock.Clock
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, clk clock.Clock) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, clock: clk}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.Dashboard(r.Context(), id.Role, id.EmployeeID, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeDashboard handles GET /dashboard/employee
func (h *dashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.EmployeeDashboard(r.Context(), id.EmployeeID, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetManagerDashboard handles GET /dashboard/manager
func (h *dashboardHandlerImpl) GetManagerDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.ManagerDashboard(r.Context(), h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
