package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pivolan/freq_report/domain/models"
	"github.com/pivolan/freq_report/plot"
)

// GenerateFrequencyTable renders one column's axis data as a terminal table.
func GenerateFrequencyTable(column string, axes models.AxisData) string {
	t := table.NewWriter()
	t.SetTitle(plot.Title(column))
	t.AppendHeader(table.Row{"Answer", "Frequency", "Percent"})

	total := axes.Sum()
	for i, label := range axes.Labels {
		t.AppendRow(table.Row{label, axes.Counts[i], percent(axes.Counts[i], total)})
	}
	t.AppendFooter(table.Row{"Total", total, percent(total, total)})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func percent(count, total int64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}
