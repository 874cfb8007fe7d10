package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kivusafe/portal/internal/core/domain"
)

// ListReports handles GET /reports.
func (c *Client) ListReports(ctx context.Context, token string) ([]domain.Report, error) {
	resp, err := c.do(ctx, request{
		endpoint: "reports",
		method:   http.MethodGet,
		path:     "/reports",
		token:    token,
	})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, unexpected("reports", resp)
	}

	var reports []domain.Report
	if err := json.Unmarshal(resp.body, &reports); err != nil {
		return nil, fmt.Errorf("reports: decode response: %w", err)
	}
	return reports, nil
}

// SubmitReport handles POST /report. Only 201 Created counts as success.
func (c *Client) SubmitReport(ctx context.Context, token, idempotencyKey string, sub domain.ReportSubmission) error {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	resp, err := c.do(ctx, request{
		endpoint: "report",
		method:   http.MethodPost,
		path:     "/report",
		token:    token,
		headers:  headers,
		body:     sub,
	})
	if err != nil {
		return err
	}
	if resp.status == http.StatusCreated {
		return nil
	}
	if resp.ok() {
		return fmt.Errorf("report: %w (status %d)", domain.ErrSubmissionFailed, resp.status)
	}
	return unexpected("report", resp)
}
