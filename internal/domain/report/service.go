package report

import "context"

// ReportService produces flat attendance rows for spreadsheets
type ReportService interface {
	ExportRows(ctx context.Context, req ExportRequest) ([]ExportRow, error)
}
