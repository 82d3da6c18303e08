package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"csvreport/internal/models"
)

// ReportDateLayout formats the report date, e.g. 05-Mar-2024
const ReportDateLayout = "02-Jan-2006"

// Template placeholder names
const (
	KeyReportDate   = "report_dt_str"
	KeyDataRows     = "mock_data_tbl_rows"
	KeyDataColumns  = "mock_data_tbl_columns"
	KeyTopItems     = "top_items_rows"
	KeyBarChartHTML = "v_p_c_bar_chart_html"
	KeyLinePlotHTML = "v_p_d_line_plot_html"
	KeyLogo         = "logo_img"
)

// ReportContext is everything a single render needs
type ReportContext struct {
	Date         time.Time
	Columns      []string
	Rows         []map[string]any
	TopItems     []any
	BarChartHTML template.HTML
	LinePlotHTML template.HTML
	Logo         string
}

// Data returns the template data. Every placeholder is always present.
func (rc ReportContext) Data() map[string]any {
	rows := rc.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	columns := rc.Columns
	if columns == nil {
		columns = []string{}
	}
	top := rc.TopItems
	if top == nil {
		top = []any{}
	}

	return map[string]any{
		KeyReportDate:   rc.Date.Format(ReportDateLayout),
		KeyDataRows:     rows,
		KeyDataColumns:  columns,
		KeyTopItems:     top,
		KeyBarChartHTML: rc.BarChartHTML,
		KeyLinePlotHTML: rc.LinePlotHTML,
		KeyLogo:         rc.Logo,
	}
}

// Composer substitutes a ReportContext into a template
type Composer struct {
	tmpl *template.Template
}

// NewComposer creates a composer for tmpl
func NewComposer(tmpl *template.Template) *Composer {
	return &Composer{tmpl: tmpl}
}

// Compose renders the report
func (c *Composer) Compose(rc ReportContext) (string, error) {
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, rc.Data()); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrTemplate, err)
	}
	return buf.String(), nil
}
