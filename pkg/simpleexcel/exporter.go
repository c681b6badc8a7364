package simpleexcel

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

// =============================================================================
// Types
// =============================================================================

// DataExporter renders sections of tabular data into an xlsx workbook.
type DataExporter struct {
	template *ReportTemplate
	// data holds data bound to specific section IDs
	data map[string]interface{}
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a block of rows in a sheet. Sections of a sheet are
// stacked vertically with one blank row between them.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"` // Data is bound at runtime
	ShowHeader  bool           `yaml:"show_header"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"` // Struct field name or map key
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

// =============================================================================
// Constructors
// =============================================================================

// NewDataExporterFromYaml parses a report template.
func NewDataExporterFromYaml(content []byte) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.UnmarshalStrict(content, &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("report template has no sheets")
	}

	return &DataExporter{
		template: &tmpl,
		data:     make(map[string]interface{}),
	}, nil
}

// BindSectionData binds data to a section ID. Unbound sections render
// their title and header only.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// =============================================================================
// Rendering
// =============================================================================

func (e *DataExporter) buildExcel() (*excelize.File, error) {
	f := excelize.NewFile()
	for i, st := range e.template.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", st.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(st.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", st.Name, err)
		}

		sections := make([]*SectionConfig, len(st.Sections))
		for j := range st.Sections {
			sec := st.Sections[j]
			if data, ok := e.data[sec.ID]; ok {
				sec.Data = data
			}
			sections[j] = &sec
		}
		if err := renderSections(f, st.Name, sections); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	rowNum := 1
	widths := map[int]float64{}

	for _, sec := range sections {
		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			if err := applyStyle(f, sheet, rowNum, 1, sec.TitleStyle, true); err != nil {
				return err
			}
			rowNum++
		}

		if sec.ShowHeader && len(sec.Columns) > 0 {
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
			}
			if err := applyStyle(f, sheet, rowNum, len(sec.Columns), sec.HeaderStyle, true); err != nil {
				return err
			}
			rowNum++
		}

		for i, col := range sec.Columns {
			if col.Width > widths[i+1] {
				widths[i+1] = col.Width
			}
		}

		rows, err := toRows(sec.Data)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.ID, err)
		}
		for _, row := range rows {
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
				if err := f.SetCellValue(sheet, cell, row[col.FieldName]); err != nil {
					return err
				}
			}
			rowNum++
		}

		// Add spacing between sections
		rowNum++
	}

	for col, width := range widths {
		if width <= 0 {
			continue
		}
		name, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// applyStyle styles cells 1..cols of row. A nil template falls back to bold
// text when bold is set.
func applyStyle(f *excelize.File, sheet string, row, cols int, tmpl *StyleTemplate, bold bool) error {
	style := &excelize.Style{Font: &excelize.Font{Bold: bold}}
	if tmpl != nil {
		if tmpl.Font != nil {
			style.Font = &excelize.Font{Bold: tmpl.Font.Bold, Color: strings.TrimPrefix(tmpl.Font.Color, "#")}
		}
		if tmpl.Fill != nil && tmpl.Fill.Color != "" {
			style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(tmpl.Fill.Color, "#")}}
		}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(cols, row)
	return f.SetCellStyle(sheet, start, end, id)
}

// =============================================================================
// Output
// =============================================================================

// ToBytes exports the Excel file to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.ToWriter(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter writes the Excel file to the provided io.Writer.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.buildExcel()
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// ContentType is the MIME type of xlsx workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
