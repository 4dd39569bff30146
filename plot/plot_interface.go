package plot

// ChartRenderer draws one bar chart per column into a file.
type ChartRenderer interface {
	RenderBarChart(path string, labels []string, counts []int64, title string) error
	// Extension is the file extension of the produced chart, with the dot.
	Extension() string
}

// Title is the chart title used for a column.
func Title(column string) string {
	return "Value Frequency for " + column
}
