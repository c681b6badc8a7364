package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
	"github.com/AlefSillva/projeto-empresa-db/internal/service/serviceutils"
	"github.com/AlefSillva/projeto-empresa-db/pkg/simpleexcel"
)

type fakeReportService struct {
	resources  []domain.ResourceUsage
	costs      []domain.DepartmentCost
	dependents []domain.ProjectDependents
	err        error
}

func (f *fakeReportService) TopResourcesByQuantity(context.Context) ([]domain.ResourceUsage, error) {
	return f.resources, f.err
}

func (f *fakeReportService) CompletedProjectCostByDepartment(context.Context) ([]domain.DepartmentCost, error) {
	return f.costs, f.err
}

func (f *fakeReportService) ProjectWithMostDependents(context.Context) ([]domain.ProjectDependents, error) {
	return f.dependents, f.err
}

func serve(t *testing.T, svc domain.ReportService, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	NewReportHandler(svc).RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRootHandler(t *testing.T) {
	rec := serve(t, &fakeReportService{}, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"`+LivenessMessage+`"}`, rec.Body.String())
}

func TestReportEndpoints(t *testing.T) {
	svc := &fakeReportService{
		resources: []domain.ResourceUsage{
			{Resource: "A", TotalQuantity: 8},
			{Resource: "B", TotalQuantity: 5},
			{Resource: "C", TotalQuantity: 1},
		},
		costs: []domain.DepartmentCost{
			{Department: "Eng", TotalCost: 300},
			{Department: "Sales", TotalCost: 50},
		},
		dependents: []domain.ProjectDependents{{Project: "P1", DependentCount: 3}},
	}

	testCases := map[string]string{
		"/consulta2": `[{"resource":"A","total_quantity":8},{"resource":"B","total_quantity":5},{"resource":"C","total_quantity":1}]`,
		"/consulta3": `[{"department":"Eng","total_cost":300},{"department":"Sales","total_cost":50}]`,
		"/consulta5": `[{"project":"P1","dependent_count":3}]`,
	}

	for path, want := range testCases {
		t.Run(path, func(t *testing.T) {
			rec := serve(t, svc, path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, want, rec.Body.String())
		})
	}
}

func TestReportEndpoints_EmptyResultIsArray(t *testing.T) {
	svc := &fakeReportService{
		resources:  []domain.ResourceUsage{},
		costs:      []domain.DepartmentCost{},
		dependents: []domain.ProjectDependents{},
	}

	for _, path := range []string{"/consulta2", "/consulta3", "/consulta5"} {
		rec := serve(t, svc, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestReportEndpoints_QueryFailure(t *testing.T) {
	svc := &fakeReportService{err: fmt.Errorf("%w: no such table: projects", domain.ErrQueryExecution)}

	for _, path := range []string{"/consulta2", "/consulta3", "/consulta5", "/relatorio"} {
		rec := serve(t, svc, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)

		var body serviceutils.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.NotEmpty(t, body.Message, path)
		assert.Contains(t, body.Error, "no such table", path)
	}

	// the liveness endpoint never touches the store
	rec := serve(t, &fakeReportService{err: errors.New("down")}, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportHandler(t *testing.T) {
	svc := &fakeReportService{
		resources:  []domain.ResourceUsage{{Resource: "Servidor", TotalQuantity: 42}},
		costs:      []domain.DepartmentCost{{Department: "Eng", TotalCost: 1500.5}},
		dependents: []domain.ProjectDependents{{Project: "Portal", DependentCount: 2}},
	}

	rec := serve(t, svc, "/relatorio")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, simpleexcel.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Relatorio")
	require.NoError(t, err)

	// title, header, one data row and a blank spacer per section
	require.GreaterOrEqual(t, len(rows), 11)
	assert.Equal(t, "Recursos mais utilizados", rows[0][0])
	assert.Equal(t, []string{"Recurso", "Quantidade total"}, rows[1])
	assert.Equal(t, []string{"Servidor", "42"}, rows[2])
	assert.Equal(t, []string{"Departamento", "Custo total"}, rows[5])
	assert.Equal(t, "Eng", rows[6][0])
	assert.Equal(t, []string{"Portal", "2"}, rows[10])
}
