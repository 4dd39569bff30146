package plot

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const nameYAxis = "Frequency"

type barData struct {
	labels    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func newBarData(labels []string, counts []int64, title string) barData {
	y := make([]float64, len(counts))
	for i, c := range counts {
		y[i] = float64(c)
	}
	return barData{
		labels:    labels,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: title,
	}
}

func (d barData) findMaxValue() float64 {
	return findMaxValue(d.yValues)
}

func (d barData) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.labels))
	for i, label := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor:   drawing.ColorBlue,
				StrokeColor: drawing.ColorBlue,
			},
		})
	}
	return bars
}

// generateGrid returns whole-number y ticks from zero and the top of the range.
func (d barData) generateGrid() ([]chart.Tick, float64) {
	max := d.findMaxValue()
	if max <= 0 {
		max = 1
	}
	step := math.Max(1, math.Ceil(calculateGridStep(max)))
	top := math.Ceil(max/step) * step

	var ticks []chart.Tick
	for i := 0; float64(i)*step <= top; i++ {
		v := float64(i) * step
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return ticks, top
}
