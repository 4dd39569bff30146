// Package report assembles the per-column charts and tables into one HTML page.
package report

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"

	"github.com/pivolan/freq_report/domain/models"
)

type State int

const (
	Unopened State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrAlreadyOpen = errors.New("report already opened")
	ErrNotOpen     = errors.New("report is not open")
)

const (
	tableWidth = 950
	header     = `<!DOCTYPE html>
<html><head><meta charset="utf-8" /><title>Frequency Report</title><style>
table{width:1000px;border-collapse:collapse;padding:0;border:3px solid #000;}
th{background:#999;text-align:left;border:2px solid #000;margin:0;padding:5px 8px;}
td{border:2px solid #000;margin:0;padding:5px 8px;}
hr{margin:20px 0 20px 0;padding:3px;border:0;background:#660000;}
</style></head><body>
`
	footer = "</body></html>\n"
)

var fragmentTemplate = template.Must(template.New("fragment").Parse(
	`<div id="{{.Anchor}}" style="width:1000px;margin:0 auto;">
{{if .Image}}<img src="{{.ChartRef}}" alt="Frequency graph for {{.Column}}" />{{else}}<iframe src="{{.ChartRef}}" title="Frequency graph for {{.Column}}" width="1020" height="600"></iframe>{{end}}
<br /><br />
<table><tr><th style="width:50px;background:#222;color:#FFF;">Answer</th>{{range .Labels}}<th style="width:{{$.CellWidth}}px;">{{.}}</th>{{end}}</tr>
<tr><td style="width:50px;background:#222;color:#FFF;">Frequency</td>{{range .Counts}}<td style="width:{{$.CellWidth}}px;">{{.}}</td>{{end}}</tr></table>
</div><hr />
`))

type fragment struct {
	Anchor    string
	Column    string
	ChartRef  string
	Image     bool
	Labels    []string
	Counts    []int64
	CellWidth int
}

// Writer appends one fragment per column to a single HTML file.
// It is not safe for concurrent use.
type Writer struct {
	path      string
	state     State
	file      *os.File
	fragments int
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) State() State {
	return w.state
}

// Fragments is the number of columns appended so far.
func (w *Writer) Fragments() int {
	return w.fragments
}

// Open truncates the report file and writes the document header.
func (w *Writer) Open() error {
	if w.state != Unopened {
		return fmt.Errorf("%w: %s is %s", ErrAlreadyOpen, w.path, w.state)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrIO, err)
	}
	w.file = f
	w.state = Open
	return w.write(header)
}

// AppendColumn writes the chart reference and the frequency table of one
// column. chartRef is relative to the report file.
func (w *Writer) AppendColumn(column, chartRef string, axes models.AxisData) error {
	if w.state != Open {
		return fmt.Errorf("%w: cannot append %s in state %s", ErrNotOpen, column, w.state)
	}
	frag := fragment{
		Anchor:    models.Slug(column),
		Column:    column,
		ChartRef:  filepath.ToSlash(chartRef),
		Image:     filepath.Ext(chartRef) != ".html",
		Labels:    axes.Labels,
		Counts:    axes.Counts,
		CellWidth: cellWidth(axes.Len()),
	}
	if err := fragmentTemplate.Execute(w.file, frag); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrIO, w.path, err)
	}
	w.fragments++
	return nil
}

// Close writes the closing tags and releases the file.
func (w *Writer) Close() error {
	if w.state != Open {
		return fmt.Errorf("%w: cannot close in state %s", ErrNotOpen, w.state)
	}
	w.state = Closed
	werr := w.write(footer)
	if err := w.file.Close(); err != nil && werr == nil {
		werr = fmt.Errorf("%w: %w", models.ErrIO, err)
	}
	return werr
}

// Abort releases the file of an open report without writing the closing
// tags, leaving the fragments written so far for inspection.
func (w *Writer) Abort() {
	if w.state != Open {
		return
	}
	w.state = Closed
	if err := w.file.Close(); err != nil {
		log.Printf("warning: release %s: %v", w.path, err)
	}
}

func (w *Writer) write(s string) error {
	if _, err := w.file.WriteString(s); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrIO, w.path, err)
	}
	return nil
}

// cellWidth is a CSS hint only, wide tables overflow.
func cellWidth(labels int) int {
	if labels <= 0 {
		return tableWidth
	}
	return tableWidth / labels
}
