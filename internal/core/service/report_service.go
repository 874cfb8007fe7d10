package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/api/metrics"
	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

const chartLabel = "Nombre de signalements"

// MapSettings positions the dashboard map.
type MapSettings struct {
	Center domain.Coordinates
	Zoom   int
}

type ReportService struct {
	client    ports.ReportClient
	session   ports.SessionService
	palette   *Palette
	exporters map[string]ports.ReportExporter
	mapView   MapSettings
	log       zerolog.Logger
}

func NewReportService(
	client ports.ReportClient,
	session ports.SessionService,
	palette *Palette,
	mapView MapSettings,
	log zerolog.Logger,
	exporters ...ports.ReportExporter,
) *ReportService {
	if palette == nil {
		palette = NewPalette()
	}
	byFormat := make(map[string]ports.ReportExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &ReportService{
		client:    client,
		session:   session,
		palette:   palette,
		exporters: byFormat,
		mapView:   mapView,
		log:       log,
	}
}

// Submit forwards a new incident report. Anonymous reports never carry the
// reporter's name.
func (s *ReportService) Submit(ctx context.Context, in ports.SubmitReportInput) (string, error) {
	sub := domain.ReportSubmission{
		Anonymous:    in.Anonymous,
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		IncidentDate: in.IncidentDate,
		Description:  in.Description,
		Category:     in.Category,
	}
	if in.Anonymous {
		sub.Name = ""
	}
	if in.Location != nil {
		lat, lng := in.Location.Lat, in.Location.Lng
		sub.Latitude = &lat
		sub.Longitude = &lng
	}

	key := uuid.NewString()
	if err := s.client.SubmitReport(ctx, s.session.Token(), key, sub); err != nil {
		metrics.ReportsSubmittedTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Str("reference", key).Str("category", sub.Category).Msg("report submission failed")
		return "", fmt.Errorf("submit report: %w", err)
	}

	metrics.ReportsSubmittedTotal.WithLabelValues("submitted").Inc()
	s.log.Info().Str("reference", key).Str("category", sub.Category).Bool("anonymous", sub.Anonymous).Msg("report submitted")
	return key, nil
}

// Dashboard fetches the reports and aggregates them. A result that arrives
// after ctx was cancelled is discarded.
func (s *ReportService) Dashboard(ctx context.Context) (*ports.DashboardView, error) {
	reports, err := s.client.ListReports(ctx, s.session.Token())
	if err != nil {
		return nil, fmt.Errorf("fetch reports: %w", err)
	}
	if err := ctx.Err(); err != nil {
		s.log.Debug().Err(err).Int("reports", len(reports)).Msg("dashboard fetch outlived its caller, discarding")
		return nil, err
	}

	metrics.DashboardReports.Set(float64(len(reports)))
	return s.buildView(reports), nil
}

// Export renders the dashboard in the requested format.
func (s *ReportService) Export(ctx context.Context, format string) (*ports.ExportResult, error) {
	exporter, ok := s.exporters[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	view, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, view); err != nil {
		return nil, fmt.Errorf("export %s: %w", exporter.Format(), err)
	}

	metrics.ExportsTotal.WithLabelValues(exporter.Format()).Inc()
	return &ports.ExportResult{
		FileName:    exporter.FileName(),
		ContentType: exporter.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func (s *ReportService) buildView(reports []domain.Report) *ports.DashboardView {
	if reports == nil {
		reports = []domain.Report{}
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range reports {
		if _, seen := counts[r.Category]; !seen {
			order = append(order, r.Category)
		}
		counts[r.Category]++
	}

	view := &ports.DashboardView{
		Categories: make([]ports.CategoryCount, 0, len(order)),
		Chart: ports.ChartData{
			Labels: make([]string, 0, len(order)),
		},
		Map: ports.MapView{
			Center:  s.mapView.Center,
			Zoom:    s.mapView.Zoom,
			Markers: make([]ports.Marker, 0, len(reports)),
		},
		Reports: reports,
	}

	dataset := ports.ChartDataset{
		Label:           chartLabel,
		Data:            make([]int, 0, len(order)),
		BackgroundColor: make([]string, 0, len(order)),
		BorderColor:     make([]string, 0, len(order)),
		BorderWidth:     1,
	}
	for _, category := range order {
		color := s.palette.ColorFor(category)
		view.Categories = append(view.Categories, ports.CategoryCount{
			Category: category,
			Count:    counts[category],
			Color:    color,
		})
		view.Chart.Labels = append(view.Chart.Labels, category)
		dataset.Data = append(dataset.Data, counts[category])
		dataset.BackgroundColor = append(dataset.BackgroundColor, color)
		dataset.BorderColor = append(dataset.BorderColor, color)
	}
	view.Chart.Datasets = []ports.ChartDataset{dataset}

	for _, r := range reports {
		loc, ok := r.Location()
		if !ok {
			continue
		}
		view.Map.Markers = append(view.Map.Markers, ports.Marker{
			ID:           r.ID,
			Lat:          loc.Lat,
			Lng:          loc.Lng,
			Color:        s.palette.ColorFor(r.Category),
			Category:     r.Category,
			Description:  r.Description,
			IncidentDate: r.IncidentDate,
		})
	}

	return view
}
