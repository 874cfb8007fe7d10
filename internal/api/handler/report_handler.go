package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

// ReportHandler serves the incident form and the dashboard.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit forwards an incident report. Anonymous reports never carry a name.
//
// @Summary      Submit an incident report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body      submitReportRequest  true  "Incident report"
// @Success      201   {object}  submitReportResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /report [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.SubmitReportInput{
		Anonymous:    req.Anonymous,
		Name:         req.Name,
		Email:        req.Email,
		IncidentDate: req.IncidentDate,
		Description:  req.Description,
		Category:     req.Category,
	}
	if req.Latitude != nil && req.Longitude != nil {
		input.Location = &domain.Coordinates{Lat: *req.Latitude, Lng: *req.Longitude}
	}

	ref, err := h.service.Submit(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submitReportResponse{
		Message:   "Report successfully submitted",
		Reference: ref,
	})
}

// Dashboard returns the category counts, chart data and map markers.
//
// @Summary      Reports dashboard
// @Tags         reports
// @Produce      json
// @Success      200  {object}  ports.DashboardView
// @Failure      303  "redirect to the login page"
// @Failure      502  {object}  errorResponse
// @Router       /dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	view, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Export downloads the dashboard as csv, xlsx or pdf.
//
// @Summary      Export the dashboard
// @Tags         reports
// @Produce      octet-stream
// @Param        format  query     string  false  "csv, xlsx or pdf"  default(xlsx)
// @Success      200     {file}    file
// @Failure      400     {object}  errorResponse
// @Failure      502     {object}  errorResponse
// @Router       /dashboard/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "xlsx"
	}

	out, err := h.service.Export(c.Request().Context(), format)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.FileName))
	return c.Blob(http.StatusOK, out.ContentType, out.Data)
}
