package ports

import (
	"context"
	"io"

	"github.com/kivusafe/portal/internal/core/domain"
)

// SubmitReportInput is the DTO passed from the transport layer to ReportService.
type SubmitReportInput struct {
	Anonymous    bool
	Name         string
	Email        string
	IncidentDate string
	Description  string
	Category     string
	Location     *domain.Coordinates // optional
}

// CategoryCount is one bar of the dashboard chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Color    string `json:"color"`
}

// ChartDataset mirrors the dataset shape chart.js consumes.
type ChartDataset struct {
	Label           string   `json:"label"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     []string `json:"borderColor"`
	BorderWidth     int      `json:"borderWidth"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Marker is a single report pin on the dashboard map.
type Marker struct {
	ID           domain.ReportID `json:"id"`
	Lat          float64         `json:"lat"`
	Lng          float64         `json:"lng"`
	Color        string          `json:"color"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	IncidentDate string          `json:"incidentDate"`
}

type MapView struct {
	Center  domain.Coordinates `json:"center"`
	Zoom    int                `json:"zoom"`
	Markers []Marker           `json:"markers"`
}

// DashboardView is everything the dashboard renders, built from one fetch.
type DashboardView struct {
	Categories []CategoryCount `json:"categories"`
	Chart      ChartData       `json:"chart"`
	Map        MapView         `json:"map"`
	Reports    []domain.Report `json:"reports"`
}

// ReportExporter renders a dashboard into a downloadable file.
type ReportExporter interface {
	Format() string
	ContentType() string
	FileName() string
	Export(w io.Writer, view *DashboardView) error
}

// ExportResult is a rendered export ready to be sent as an attachment.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReportService defines use-case operations for incident reports.
type ReportService interface {
	// Submit forwards a report and returns the idempotency key it was sent with.
	Submit(ctx context.Context, input SubmitReportInput) (string, error)
	Dashboard(ctx context.Context) (*DashboardView, error)
	Export(ctx context.Context, format string) (*ExportResult, error)
}

// RegistrationService forwards the registration form.
type RegistrationService interface {
	Register(ctx context.Context, reg domain.Registration) error
}
