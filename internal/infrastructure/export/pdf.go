package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/kivusafe/portal/internal/core/ports"
)

// ChartPDF draws the category bar chart on a landscape A4 page.
type ChartPDF struct {
	Title string
}

func NewChartPDF() ChartPDF {
	return ChartPDF{Title: "Signalements par catégorie"}
}

func (ChartPDF) Format() string      { return "pdf" }
func (ChartPDF) ContentType() string { return "application/pdf" }
func (ChartPDF) FileName() string    { return "chart.pdf" }

const (
	margin     = 20.0
	axisGap    = 12.0
	labelSpace = 14.0
	gridLines  = 5
)

func (c ChartPDF) Export(w io.Writer, view *ports.DashboardView) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(c.Title, true)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(c.Title), "", 1, "C", false, 0, "")

	var (
		labels []string
		values []int
		colors []string
		legend string
	)
	if len(view.Chart.Datasets) > 0 {
		ds := view.Chart.Datasets[0]
		labels, values, colors, legend = view.Chart.Labels, ds.Data, ds.BackgroundColor, ds.Label
	}

	if legend != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(legend), "", 1, "C", false, 0, "")
	}

	left, right := margin+axisGap, pageW-margin
	top, bottom := 40.0, pageH-margin-labelSpace
	plotH := bottom - top

	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(left, top, left, bottom)
	pdf.Line(left, bottom, right, bottom)

	if len(labels) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.Text(left+10, top+plotH/2, tr("Aucun signalement"))
		return output(pdf, w)
	}

	maxVal := 1
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetDrawColor(220, 220, 220)
	for i := 0; i <= gridLines; i++ {
		y := bottom - plotH*float64(i)/gridLines
		v := float64(maxVal) * float64(i) / gridLines
		pdf.Line(left, y, right, y)
		pdf.Text(margin, y+1, strconv.FormatFloat(v, 'f', -1, 64))
	}

	slot := (right - left) / float64(len(labels))
	barW := slot * 0.6
	for i, label := range labels {
		v := 0
		if i < len(values) {
			v = values[i]
		}
		h := plotH * float64(v) / float64(maxVal)
		x := left + slot*float64(i) + (slot-barW)/2

		r, g, b := hexRGB(at(colors, i))
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(r, g, b)
		pdf.Rect(x, bottom-h, barW, h, "FD")

		pdf.SetXY(left+slot*float64(i), bottom+2)
		pdf.CellFormat(slot, 5, tr(label), "", 0, "C", false, 0, "")
		pdf.SetXY(x, bottom-h-6)
		pdf.CellFormat(barW, 5, strconv.Itoa(v), "", 0, "C", false, 0, "")
	}

	return output(pdf, w)
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// hexRGB parses #RRGGBB, falling back to grey.
func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 128, 128, 128
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 128, 128, 128
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff)
}
