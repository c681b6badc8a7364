package handler

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
	"github.com/AlefSillva/projeto-empresa-db/internal/logger"
	"github.com/AlefSillva/projeto-empresa-db/internal/service/serviceutils"
	"github.com/AlefSillva/projeto-empresa-db/pkg/simpleexcel"
)

// LivenessMessage is returned by GET /.
const LivenessMessage = "Servidor está funcionando!"

//go:embed report_layout.yaml
var reportLayout []byte

// MessageResponse is the body of the liveness endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

type ReportHandler struct {
	svc domain.ReportService
}

func NewReportHandler(svc domain.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// RootHandler handles GET /
func (h *ReportHandler) RootHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, MessageResponse{Message: LivenessMessage})
}

// TopResourcesHandler handles GET /consulta2
func (h *ReportHandler) TopResourcesHandler(c echo.Context) error {
	rows, err := h.svc.TopResourcesByQuantity(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to query top resources", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, rows)
}

// DepartmentCostHandler handles GET /consulta3
func (h *ReportHandler) DepartmentCostHandler(c echo.Context) error {
	rows, err := h.svc.CompletedProjectCostByDepartment(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to query department costs", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, rows)
}

// ProjectDependentsHandler handles GET /consulta5
func (h *ReportHandler) ProjectDependentsHandler(c echo.Context) error {
	rows, err := h.svc.ProjectWithMostDependents(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to query project dependents", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, rows)
}

// ExportHandler handles GET /relatorio. It renders the three reports into
// one worksheet laid out by report_layout.yaml.
func (h *ReportHandler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()

	resources, err := h.svc.TopResourcesByQuantity(ctx)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to query top resources", err)
	}
	costs, err := h.svc.CompletedProjectCostByDepartment(ctx)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to query department costs", err)
	}
	dependents, err := h.svc.ProjectWithMostDependents(ctx)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to query project dependents", err)
	}

	exporter, err := simpleexcel.NewDataExporterFromYaml(reportLayout)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to parse report layout", err)
	}
	excelBytes, err := exporter.
		BindSectionData("top_resources", resources).
		BindSectionData("department_costs", costs).
		BindSectionData("project_dependents", dependents).
		ToBytes()
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate Excel file", err)
	}

	logger.InfoLog(ctx, "Generated report workbook (%d bytes)", len(excelBytes))

	c.Response().Header().Set("Content-Disposition", `attachment; filename="relatorio.xlsx"`)
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(excelBytes)))
	return c.Blob(http.StatusOK, simpleexcel.ContentType, excelBytes)
}

// RegisterRoutes mounts the report endpoints on e.
func (h *ReportHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.RootHandler)
	e.GET("/consulta2", h.TopResourcesHandler)
	e.GET("/consulta3", h.DepartmentCostHandler)
	e.GET("/consulta5", h.ProjectDependentsHandler)
	e.GET("/relatorio", h.ExportHandler)
}
