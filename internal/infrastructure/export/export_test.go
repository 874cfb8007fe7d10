package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

func coord(v float64) *float64 { return &v }

func sampleView() *ports.DashboardView {
	return &ports.DashboardView{
		Categories: []ports.CategoryCount{
			{Category: "cat1", Count: 2, Color: "#FF5733"},
			{Category: "cat2", Count: 1, Color: "#33FF57"},
		},
		Chart: ports.ChartData{
			Labels: []string{"cat1", "cat2"},
			Datasets: []ports.ChartDataset{{
				Label:           "Nombre de signalements",
				Data:            []int{2, 1},
				BackgroundColor: []string{"#FF5733", "#33FF57"},
				BorderColor:     []string{"#FF5733", "#33FF57"},
				BorderWidth:     1,
			}},
		},
		Reports: []domain.Report{
			{ID: "1", Name: "Amani", Email: "a@b.c", IncidentDate: "2024-05-01", Description: "flood, road cut", Category: "cat1", Latitude: coord(-1.68), Longitude: coord(29.22)},
			{ID: "2", IncidentDate: "2024-05-02", Description: "theft", Category: "cat1"},
			{ID: "3", IncidentDate: "2024-05-03", Description: "fire", Category: "cat2", Latitude: coord(-1.7), Longitude: coord(29.2)},
		},
	}
}

func TestCSV_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSV{}).Export(&buf, sampleView()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("rows = %d, want 4", len(records))
	}
	if records[0][3] != "incidentDate" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][4] != "flood, road cut" {
		t.Errorf("description = %q", records[1][4])
	}
	if records[1][6] != "-1.68" {
		t.Errorf("latitude = %q", records[1][6])
	}
	if records[2][6] != "" || records[2][7] != "" {
		t.Errorf("missing location must export empty cells, got %q, %q", records[2][6], records[2][7])
	}
}

func TestXLSX_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (XLSX{}).Export(&buf, sampleView()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != "Reports" {
		t.Errorf("sheet = %q, want Reports", got)
	}
	rows, err := f.GetRows("Reports")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "id" || rows[3][5] != "cat2" {
		t.Errorf("unexpected rows: %v", rows)
	}
	if v, _ := f.GetCellValue("Reports", "G2"); v != "-1.68" {
		t.Errorf("G2 = %q, want -1.68", v)
	}
	for _, cell := range []string{"G3", "H3"} {
		if v, _ := f.GetCellValue("Reports", cell); v != "" {
			t.Errorf("%s = %q, want empty for a report without location", cell, v)
		}
	}
}

func TestChartPDF_Export(t *testing.T) {
	for name, view := range map[string]*ports.DashboardView{
		"with data": sampleView(),
		"empty":     {},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewChartPDF().Export(&buf, view); err != nil {
				t.Fatalf("Export: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:min(8, buf.Len())])
			}
		})
	}
}

func TestHexRGB(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#FF5733", 255, 87, 51},
		{"3357FF", 51, 87, 255},
		{"nope", 128, 128, 128},
	}
	for _, tt := range tests {
		r, g, b := hexRGB(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hexRGB(%q) = %d,%d,%d", tt.in, r, g, b)
		}
	}
}

func TestAll_FormatsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range All() {
		if seen[e.Format()] {
			t.Errorf("duplicate format %q", e.Format())
		}
		seen[e.Format()] = true
	}
	for _, f := range []string{"csv", "xlsx", "pdf"} {
		if !seen[f] {
			t.Errorf("missing exporter %q", f)
		}
	}
}
