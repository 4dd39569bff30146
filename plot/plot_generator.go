package plot

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/pivolan/freq_report/domain/models"
)

const (
	paddingTop  = 50
	paddingLeft = 40
	maxBarWidth = 60
	aspectRatio = 9.0 / 16.0
)

// PNGRenderer draws bar charts as PNG images with go-chart.
type PNGRenderer struct {
	Width int
	Font  *truetype.Font
}

// NewPNGRenderer returns a renderer of the given pixel width. A non-empty
// fontPath must point at a TrueType font used for all chart text.
func NewPNGRenderer(width int, fontPath string) (*PNGRenderer, error) {
	r := &PNGRenderer{Width: width}
	if fontPath == "" {
		return r, nil
	}
	raw, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: chart font: %w", models.ErrRendererPrecondition, err)
	}
	r.Font, err = truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: chart font %s: %w", models.ErrRendererPrecondition, fontPath, err)
	}
	return r, nil
}

func (r *PNGRenderer) Extension() string {
	return ".png"
}

func (r *PNGRenderer) RenderBarChart(path string, labels []string, counts []int64, title string) error {
	if err := checkOutputDir(path); err != nil {
		return err
	}
	png, err := r.drawPlotBar(newBarData(labels, counts, title))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}

func (r *PNGRenderer) drawPlotBar(data barData) ([]byte, error) {
	if len(data.labels) == 0 {
		return nil, fmt.Errorf("error rendering chart %q: no bars", data.nameGraph)
	}
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	ticks, top := data.generateGrid()
	barWidth := calculateBarWidth(r.Width, len(barValues))

	bar := chart.BarChart{
		Title:      data.nameGraph,
		TitleStyle: chart.Style{FontSize: 14},
		Font:       r.Font,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    paddingTop,
				Left:   paddingLeft,
				Bottom: paddingX,
			},
		},
		Width:      r.Width,
		Height:     int(float64(r.Width)*aspectRatio) + paddingX,
		BarWidth:   barWidth,
		BarSpacing: int(math.Max(1, float64(barWidth)/4)),
		Bars:       barValues,
		YAxis: chart.YAxis{
			Name: data.nameYAxis,
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: top,
			},
			Ticks: ticks,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor:     chart.ColorBlack,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		XAxis: chart.Style{
			StrokeWidth:         2,
			StrokeColor:         chart.ColorBlack,
			TextRotationDegrees: 90,
			FontSize:            10,
		},
		Elements: []chart.Renderable{yAxisName(data.nameYAxis)},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// yAxisName writes the axis caption vertically along the left edge.
// go-chart bar charts do not draw YAxis.Name themselves.
func yAxisName(name string) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		r.SetFont(defaults.Font)
		r.SetFontColor(chart.ColorBlack)
		r.SetFontSize(12)
		r.SetTextRotation(3 * math.Pi / 2)
		tb := r.MeasureText(name)
		r.Text(name, paddingLeft/2, canvasBox.Top+canvasBox.Height()/2+tb.Width()/2)
		r.ClearTextRotation()
	}
}

func checkOutputDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: output directory %s: %w", models.ErrRendererPrecondition, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", models.ErrRendererPrecondition, dir)
	}
	return nil
}

func calculateBarWidth(width, bars int) int {
	usable := float64(width - paddingLeft - 100)
	w := usable / float64(bars) * 0.75
	return int(math.Max(1, math.Min(maxBarWidth, w)))
}

func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	// round large steps to "nice" numbers
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

// customizePaddingXBottom leaves room for rotated x labels.
func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count*8 + 20
}
