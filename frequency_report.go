package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/pivolan/freq_report/config"
	"github.com/pivolan/freq_report/database"
	"github.com/pivolan/freq_report/domain/models"
	"github.com/pivolan/freq_report/frequency"
	"github.com/pivolan/freq_report/plot"
	"github.com/pivolan/freq_report/report"
)

type frequencyReport struct {
	cfg      *config.Config
	source   *database.Source
	renderer plot.ChartRenderer
	writer   *report.Writer
	out      io.Writer
}

// generateFrequencyReport charts every column of the configured table and
// writes frequencyreport.html. An empty or unreadable table is skipped
// without creating the report.
func generateFrequencyReport(ctx context.Context, cfg *config.Config, out io.Writer) (err error) {
	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	dsn := cfg.DatabasePath
	if cfg.Driver == config.DriverSQLite {
		var cleanup func()
		dsn, cleanup, err = prepareDatabaseFile(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	source, err := database.Open(cfg.Driver, dsn, cfg.TableName, cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close: %w", models.ErrConnection, cerr)
		}
	}()

	r := &frequencyReport{
		cfg:      cfg,
		source:   source,
		renderer: renderer,
		writer:   report.NewWriter(cfg.ReportPath()),
		out:      out,
	}
	return r.run(ctx)
}

func newRenderer(cfg *config.Config) (plot.ChartRenderer, error) {
	if cfg.Renderer == config.RendererECharts {
		return &plot.EChartsRenderer{Width: cfg.ChartWidth}, nil
	}
	return plot.NewPNGRenderer(cfg.ChartWidth, cfg.ChartFont)
}

func (r *frequencyReport) run(ctx context.Context) error {
	rows, err := r.source.RowCount(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("skipping %s: %v", r.cfg.TableName, err)
		return nil
	}
	if rows == 0 {
		color.New(color.FgYellow).Fprintf(r.out, "Table %s is empty, no report generated.\n", r.cfg.TableName)
		return nil
	}

	columns, err := r.source.ListColumns(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Generating report for %d fields.", len(columns))

	if err := r.writer.Open(); err != nil {
		return err
	}
	for _, column := range columns {
		if err := ctx.Err(); err != nil {
			r.writer.Abort()
			return err
		}
		if err := r.processColumn(ctx, column.Name, rows); err != nil {
			r.writer.Abort()
			return fmt.Errorf("column %s: %w", column.Name, err)
		}
	}
	if err := r.writer.Close(); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(r.out, "\nDone! Report written to %s\n", r.writer.Path())
	return nil
}

// chartFileName keeps the column name as the chart file name unless it could
// leave the graphs directory, in which case the slug is used.
func chartFileName(column, ext string) string {
	name := column
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		name = models.Slug(column)
	}
	return name + ext
}

func (r *frequencyReport) processColumn(ctx context.Context, column string, rows int64) error {
	freqs, err := r.source.Frequencies(ctx, column, r.cfg.Strategy)
	if err != nil {
		return err
	}
	axes, err := frequency.BuildAxes(freqs, r.cfg.SortPolicy)
	if err != nil {
		return err
	}
	if sum := axes.Sum(); sum != rows {
		log.Printf("warning: counts of %s add up to %d, table has %d rows", column, sum, rows)
	}

	chartName := chartFileName(column, r.renderer.Extension())
	chartPath := filepath.Join(r.cfg.GraphsDir(), chartName)
	if err := r.renderer.RenderBarChart(chartPath, axes.Labels, axes.Counts, plot.Title(column)); err != nil {
		return err
	}
	if err := r.writer.AppendColumn(column, path.Join(config.GraphsDirName, chartName), axes); err != nil {
		return err
	}

	if r.cfg.Summary {
		fmt.Fprintf(r.out, "\n%s\n", GenerateFrequencyTable(column, axes))
	} else {
		fmt.Fprint(r.out, ".")
	}
	return nil
}
