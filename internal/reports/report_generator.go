package reports

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"csvreport/internal/aggregate"
	"csvreport/internal/charts"
	"csvreport/internal/config"
	"csvreport/internal/dataset"
	"csvreport/internal/logger"
	"csvreport/internal/models"
	"csvreport/internal/storage"
)

// Chart titles
const (
	BarChartTitle  = "Maximum Values by Code"
	LineChartTitle = "Value per date"
)

// Pipeline stage names, reported in StageError
const (
	StageValidate       = "validate parameters"
	StageLoadTemplate   = "load template"
	StageLoadData       = "load data"
	StageTopItems       = "select top items"
	StageAggregateCode  = "aggregate by code"
	StageBarChart       = "render bar chart"
	StageNormalize      = "normalize months"
	StageAggregateMonth = "aggregate by month"
	StageLineChart      = "render line chart"
	StageLoadLogo       = "load logo"
	StageCompose        = "compose report"
	StageWrite          = "write report"
)

// Options describes a single report run
type Options struct {
	CSVPath        string
	OutputFilename string
	TopN           int
}

// ReportGenerator runs the CSV to HTML report pipeline
type ReportGenerator struct {
	loader       *dataset.Loader
	chartGen     *charts.ChartGenerator
	templates    *TemplateLoader
	storage      storage.StorageClient
	templateName string
	logoName     string
	now          func() time.Time
	log          *logger.Logger
}

// NewReportGenerator creates a report generator from configuration. Reports
// are written through store.
func NewReportGenerator(cfg *config.Config, store storage.StorageClient) (*ReportGenerator, error) {
	templates, err := NewDirTemplateLoader(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}

	return &ReportGenerator{
		loader: dataset.NewLoader(),
		chartGen: charts.NewChartGenerator(charts.Options{
			CDNURL:         cfg.EChartsCDNURL,
			StaticFallback: cfg.StaticFallback,
		}),
		templates:    templates,
		storage:      store,
		templateName: cfg.TemplateName,
		logoName:     cfg.LogoName,
		now:          time.Now,
		log:          logger.GetGlobalLogger().WithComponent("reports"),
	}, nil
}

// Generate runs every stage in order and returns the path of the written
// report. Nothing is written unless every stage succeeds.
func (rg *ReportGenerator) Generate(ctx context.Context, opts Options) (string, error) {
	log := rg.log.With(map[string]interface{}{"run_id": uuid.NewString()})
	started := rg.now()
	log.Info("Starting report generation", map[string]interface{}{
		"csv":       opts.CSVPath,
		"output":    opts.OutputFilename,
		"top_items": opts.TopN,
	})

	var (
		tmpl      *template.Template
		table     *models.Table
		topIDs    []models.Cell
		codeRows  []models.AggregateRow
		barChart  charts.ChartSnippet
		monthly   *models.Table
		monthRows []models.AggregateRow
		lineChart charts.ChartSnippet
		logo      string
		html      string
		path      string
	)

	stages := []struct {
		name string
		run  func() error
	}{
		{StageValidate, func() error {
			if opts.TopN < 0 {
				return fmt.Errorf("%w: top items must be zero or greater, got %d", models.ErrInvalidParameter, opts.TopN)
			}
			return storage.ValidateFileName(opts.OutputFilename)
		}},
		{StageLoadTemplate, func() (err error) {
			tmpl, err = rg.templates.LoadHTMLTemplate(rg.templateName)
			return err
		}},
		{StageLoadData, func() (err error) {
			table, err = rg.loader.Load(opts.CSVPath)
			return err
		}},
		{StageTopItems, func() (err error) {
			topIDs, err = aggregate.TopItems(table, opts.TopN)
			return err
		}},
		{StageAggregateCode, func() (err error) {
			codeRows, err = aggregate.MaxByCode(table)
			return err
		}},
		{StageBarChart, func() (err error) {
			barChart, err = rg.chartGen.BarChart(codeRows, BarChartTitle)
			return err
		}},
		{StageNormalize, func() (err error) {
			monthly, err = dataset.NormalizeMonths(table)
			return err
		}},
		{StageAggregateMonth, func() (err error) {
			monthRows, err = aggregate.SumByMonth(monthly)
			return err
		}},
		{StageLineChart, func() (err error) {
			lineChart, err = rg.chartGen.LineChart(monthRows, LineChartTitle)
			return err
		}},
		{StageLoadLogo, func() (err error) {
			logo, err = rg.templates.LoadLogo(rg.logoName)
			return err
		}},
		{StageCompose, func() (err error) {
			html, err = NewComposer(tmpl).Compose(ReportContext{
				Date:         started,
				Columns:      table.Columns(),
				Rows:         table.Records(),
				TopItems:     lo.Map(topIDs, func(c models.Cell, _ int) any { return c.Interface() }),
				BarChartHTML: template.HTML(barChart.HTML),
				LinePlotHTML: template.HTML(lineChart.HTML),
				Logo:         logo,
			})
			return err
		}},
		{StageWrite, func() (err error) {
			path, err = rg.storage.StoreFile(ctx, opts.OutputFilename, []byte(html))
			return err
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return "", &models.StageError{Stage: stage.name, Err: err}
		}
		if err := stage.run(); err != nil {
			log.Error("Report generation failed", err, map[string]interface{}{"stage": stage.name})
			return "", &models.StageError{Stage: stage.name, Err: err}
		}
		log.Debug("Stage completed", map[string]interface{}{"stage": stage.name})
	}

	log.Info("Report generation completed", map[string]interface{}{
		"path":        path,
		"rows":        table.Len(),
		"top_items":   len(topIDs),
		"codes":       len(codeRows),
		"months":      len(monthRows),
		"bytes":       len(html),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return path, nil
}
