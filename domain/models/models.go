package models

import "fmt"

// NullLabel is the axis label of the bucket holding NULL and empty values.
const NullLabel = "SKIP"

type ColumnInfo struct {
	Name string
	Type string // declared type as reported by the driver, may be empty
}

// FrequencyTable maps the textual form of a value to the number of rows
// holding it. NULL and the empty string share the "" key.
type FrequencyTable map[string]int64

func (f FrequencyTable) Total() int64 {
	var total int64
	for _, c := range f {
		total += c
	}
	return total
}

type ValueCount struct {
	Value string `gorm:"column:value_text"`
	Count int64  `gorm:"column:frequency"`
}

// AxisData is the ordered (label, count) sequence drawn on a chart and
// written to the report table.
type AxisData struct {
	Labels []string
	Counts []int64
}

func (a *AxisData) Append(label string, count int64) {
	a.Labels = append(a.Labels, label)
	a.Counts = append(a.Counts, count)
}

func (a AxisData) Len() int {
	return len(a.Labels)
}

func (a AxisData) Sum() int64 {
	var sum int64
	for _, c := range a.Counts {
		sum += c
	}
	return sum
}

func (a AxisData) String() string {
	return fmt.Sprintf("%v %v", a.Labels, a.Counts)
}
