package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kivusafe/portal/internal/core/ports"
)

// CSV writes the raw report rows with a header line.
type CSV struct{}

func (CSV) Format() string      { return "csv" }
func (CSV) ContentType() string { return "text/csv; charset=utf-8" }
func (CSV) FileName() string    { return "reports.csv" }

func (CSV) Export(w io.Writer, view *ports.DashboardView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range view.Reports {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("write report %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
