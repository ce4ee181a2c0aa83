package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	TeamSummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, clk clock.Clock) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		clock:             clk,
	}
}

// CheckIn handles POST /attendance/check-in
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), id.EmployeeID, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut handles POST /attendance/check-out
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), id.EmployeeID, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Today handles GET /attendance/today
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.TodayStatus(r.Context(), id.EmployeeID, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyHistory handles GET /attendance/my-history
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	filter, err := monthFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.History(r.Context(), id.EmployeeID, filter, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// MySummary handles GET /attendance/my-summary
func (h *attendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	filter, err := monthFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.MySummary(r.Context(), id.EmployeeID, filter, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse query parameters
	filter := attendance.AttendanceFilter{
		EmployeeCode: optionalString(r, "employee_code"),
		Department:   optionalString(r, "department"),
		Date:         optionalString(r, "date"),
		StartDate:    optionalString(r, "start_date"),
		EndDate:      optionalString(r, "end_date"),
		Status:       optionalString(r, "status"),
		SortBy:       r.URL.Query().Get("sort_by"),
		SortOrder:    r.URL.Query().Get("sort_order"),
	}

	var err error
	if filter.Month, err = optionalInt(r, "month"); err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.Year, err = optionalInt(r, "year"); err != nil {
		response.HandleError(w, err)
		return
	}

	// Pagination
	filter.Page = getIntQueryParam(r, "page", 1)
	filter.Limit = getIntQueryParam(r, "limit", 20)

	results, err := h.attendanceService.List(ctx, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Summary handles GET /attendance/summary
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req := attendance.SummaryRequest{
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
		EmployeeCode: optionalString(r, "employee_code"),
		Department:   optionalString(r, "department"),
	}

	result, err := h.attendanceService.Summarize(r.Context(), req, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamSummary handles GET /attendance/team-summary
func (h *attendanceHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := monthFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.TeamSummary(r.Context(), filter, h.clock.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
