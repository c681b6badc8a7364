package simpleexcel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type usage struct {
	Name  string
	Total int64
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func newExporter(t *testing.T, layout string) *DataExporter {
	t.Helper()
	exporter, err := NewDataExporterFromYaml([]byte(layout))
	require.NoError(t, err)
	return exporter
}

func TestExport_StacksSections(t *testing.T) {
	exporter := newExporter(t, `
sheets:
  - name: Uso
    sections:
      - id: first
        title: Primeiro
        show_header: true
        columns:
          - { field_name: Name, header: Nome, width: 20 }
          - { field_name: Total, header: Total }
      - id: second
        columns:
          - { field_name: Name }
          - { field_name: Total }
`)

	data, err := exporter.
		BindSectionData("first", []usage{{"A", 8}, {"B", 5}}).
		BindSectionData("second", []*usage{{"C", 1}}).
		ToBytes()
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Uso"}, f.GetSheetList())

	rows, err := f.GetRows("Uso")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Primeiro"}, rows[0])
	assert.Equal(t, []string{"Nome", "Total"}, rows[1])
	assert.Equal(t, []string{"A", "8"}, rows[2])
	assert.Equal(t, []string{"B", "5"}, rows[3])
	assert.Empty(t, rows[4])
	assert.Equal(t, []string{"C", "1"}, rows[5])

	width, err := f.GetColWidth("Uso", "A")
	require.NoError(t, err)
	assert.Equal(t, 20.0, width)
}

func TestExport_MultipleSheetsAndMapRows(t *testing.T) {
	exporter := newExporter(t, `
sheets:
  - name: Um
    sections:
      - id: one
        columns: [{ field_name: Name }]
  - name: Dois
    sections:
      - id: two
        columns: [{ field_name: Name }]
`)

	data, err := exporter.
		BindSectionData("one", []usage{{"A", 1}}).
		BindSectionData("two", []map[string]interface{}{{"Name": "B"}}).
		ToBytes()
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Um", "Dois"}, f.GetSheetList())

	v, err := f.GetCellValue("Dois", "A1")
	require.NoError(t, err)
	assert.Equal(t, "B", v)
}

func TestExport_StyledHeader(t *testing.T) {
	exporter := newExporter(t, `
sheets:
  - name: Resumo
    sections:
      - id: usage
        title: Uso
        show_header: true
        header_style:
          font: { bold: true, color: "#FFFFFF" }
          fill: { color: "#4F81BD" }
        columns:
          - { field_name: Name, header: Nome }
          - { field_name: Total, header: Total }
`)

	data, err := exporter.BindSectionData("usage", []usage{{"A", 3}}).ToBytes()
	require.NoError(t, err)

	f := openWorkbook(t, data)
	rows, err := f.GetRows("Resumo")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Uso"}, {"Nome", "Total"}, {"A", "3"}}, rows)

	styleID, err := f.GetCellStyle("Resumo", "B2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestExport_UnboundSectionRendersHeaderOnly(t *testing.T) {
	exporter := newExporter(t, `
sheets:
  - name: Resumo
    sections:
      - id: usage
        show_header: true
        columns:
          - { field_name: Name, header: Nome }
`)

	data, err := exporter.ToBytes()
	require.NoError(t, err)

	rows, err := openWorkbook(t, data).GetRows("Resumo")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Nome"}}, rows)
}

func TestNewDataExporterFromYaml_Invalid(t *testing.T) {
	_, err := NewDataExporterFromYaml([]byte(`sheets: []`))
	assert.Error(t, err)

	_, err = NewDataExporterFromYaml([]byte(`sheets: [{name: A, unknown: 1}]`))
	assert.Error(t, err)
}

func TestExport_UnsupportedData(t *testing.T) {
	exporter := newExporter(t, `
sheets:
  - name: X
    sections:
      - id: bad
        columns: [{ field_name: Name }]
`)

	_, err := exporter.BindSectionData("bad", 42).ToBytes()
	assert.Error(t, err)
}
