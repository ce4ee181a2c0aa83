package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/spreadsheet"
)

type ReportHandler interface {
	// Export streams attendance rows as CSV or XLSX
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Export handles GET /attendance/export
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
		EmployeeCode: optionalString(r, "employee_code"),
		Department:   optionalString(r, "department"),
		Format:       report.Format(r.URL.Query().Get("format")),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.reportService.ExportRows(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch req.Format {
	case report.FormatXLSX:
		cells := make([][]interface{}, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, row.Cells())
		}
		contentType = spreadsheet.ContentTypeXLSX
		err = spreadsheet.WriteXLSX(&buf, "Attendance", report.Header, cells)
	default:
		values := make([][]string, 0, len(rows))
		for _, row := range rows {
			values = append(values, row.Values())
		}
		contentType = spreadsheet.ContentTypeCSV
		err = spreadsheet.WriteCSV(&buf, report.Header, values)
	}
	if err != nil {
		slog.Error("failed to render export", "format", req.Format, "error", err)
		response.HandleError(w, fmt.Errorf("%w: %w", report.ErrExportRenderFailed, err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Filename()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
