// Package export renders dashboard data into downloadable files.
package export

import (
	"strconv"

	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

// columns are the raw report fields, in the order the API returns them.
var columns = []string{"id", "name", "email", "incidentDate", "description", "category", "latitude", "longitude"}

func row(r domain.Report) []string {
	return []string{
		string(r.ID),
		r.Name,
		r.Email,
		r.IncidentDate,
		r.Description,
		r.Category,
		coordinate(r.Latitude),
		coordinate(r.Longitude),
	}
}

// coordinate leaves the cell empty for reports filed without a position.
func coordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// All returns every exporter the portal offers.
func All() []ports.ReportExporter {
	return []ports.ReportExporter{CSV{}, XLSX{}, NewChartPDF()}
}
