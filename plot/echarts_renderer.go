package plot

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/freq_report/domain/models"
)

// EChartsRenderer writes interactive bar charts as standalone HTML pages.
type EChartsRenderer struct {
	Width int
}

func (r *EChartsRenderer) Extension() string {
	return ".html"
}

func (r *EChartsRenderer) RenderBarChart(path string, labels []string, counts []int64, title string) error {
	if err := checkOutputDir(path); err != nil {
		return err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", r.Width),
			Height:    fmt.Sprintf("%dpx", r.Width*9/16),
			ChartID:   "freq_" + models.Slug(title),
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 90}}),
		charts.WithYAxisOpts(opts.YAxis{Name: nameYAxis}),
	)

	items := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		items = append(items, opts.BarData{Value: c})
	}
	bar.SetXAxis(labels).AddSeries(nameYAxis, items)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	defer f.Close()
	if err := bar.Render(f); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return f.Close()
}
