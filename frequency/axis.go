// Package frequency turns per-column frequency tables into chart axes.
package frequency

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pivolan/freq_report/config"
	"github.com/pivolan/freq_report/domain/models"
)

// BuildAxes orders a frequency table for drawing. The null bucket comes
// first as models.NullLabel. The other keys follow in ascending integer
// order, keys naming the same integer ("07", "7") share one bar.
// With config.SortNumericFallback, decimal keys are ordered by value with
// their labels kept, and a table holding any non-numeric key is ordered
// lexically. With config.SortStrict any non-integer key is an error.
func BuildAxes(freqs models.FrequencyTable, policy string) (models.AxisData, error) {
	var axes models.AxisData
	if n, ok := freqs[""]; ok {
		axes.Append(models.NullLabel, n)
	}

	keys := make([]string, 0, len(freqs))
	for k := range freqs {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	ints, err := parseIntegers(keys)
	if err == nil {
		appendIntegers(&axes, keys, ints, freqs)
		return axes, nil
	}
	if policy == config.SortStrict {
		return models.AxisData{}, err
	}
	if floats, ok := parseDecimals(keys); ok {
		appendDecimals(&axes, keys, floats, freqs)
		return axes, nil
	}
	for _, k := range keys {
		axes.Append(k, freqs[k])
	}
	return axes, nil
}

func parseIntegers(keys []string) ([]int64, error) {
	parsed := make([]int64, len(keys))
	for i, k := range keys {
		v, err := strconv.ParseInt(strings.TrimSpace(k), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", models.ErrValueConversion, k)
		}
		parsed[i] = v
	}
	return parsed, nil
}

// parseDecimals accepts finite numbers only, so "NaN" or "inf" text stays text.
func parseDecimals(keys []string) ([]float64, bool) {
	parsed := make([]float64, len(keys))
	for i, k := range keys {
		v, err := strconv.ParseFloat(strings.TrimSpace(k), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		parsed[i] = v
	}
	return parsed, true
}

func appendIntegers(axes *models.AxisData, keys []string, values []int64, freqs models.FrequencyTable) {
	buckets := make(map[int64]int64, len(values))
	for i, v := range values {
		buckets[v] += freqs[keys[i]]
	}
	order := make([]int64, 0, len(buckets))
	for v := range buckets {
		order = append(order, v)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	for _, v := range order {
		axes.Append(strconv.FormatInt(v, 10), buckets[v])
	}
}

// appendDecimals labels each bucket with the lexically first key of that value.
func appendDecimals(axes *models.AxisData, keys []string, values []float64, freqs models.FrequencyTable) {
	labels := make(map[float64]string, len(values))
	buckets := make(map[float64]int64, len(values))
	for i, v := range values {
		if _, ok := labels[v]; !ok {
			labels[v] = keys[i]
		}
		buckets[v] += freqs[keys[i]]
	}
	order := make([]float64, 0, len(buckets))
	for v := range buckets {
		order = append(order, v)
	}
	sort.Float64s(order)
	for _, v := range order {
		axes.Append(labels[v], buckets[v])
	}
}
