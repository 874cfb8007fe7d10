package ports

import (
	"context"

	"github.com/kivusafe/portal/internal/core/domain"
)

// ReportClient reads and submits incident reports on the remote API.
// token may be empty for anonymous calls.
type ReportClient interface {
	ListReports(ctx context.Context, token string) ([]domain.Report, error)
	SubmitReport(ctx context.Context, token, idempotencyKey string, sub domain.ReportSubmission) error
}
