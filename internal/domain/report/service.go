package report

import "context"

// ReportService defines the manager-facing record views.
type ReportService interface {
	// ListAttendance reads records in the criteria's date window and
	// applies the remaining predicates in memory, preserving store order.
	ListAttendance(ctx context.Context, req ListRequest) (ListResponse, error)

	// ExportRows renders the filtered records as ordered rows under
	// ExportHeader for the CSV writer.
	ExportRows(ctx context.Context, req ListRequest) ([][]string, error)
}
