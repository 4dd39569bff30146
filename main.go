package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/pivolan/freq_report/config"
)

type CLI struct {
	Database  string `short:"d" help:"SQLite database file (.gz, .zip and .lz4 are unpacked), or a DSN with --driver=mysql." env:"FREQREPORT_DB"`
	Table     string `short:"t" help:"Table to report on." env:"FREQREPORT_TABLE"`
	Driver    string `help:"Database driver." enum:"sqlite,mysql" default:"sqlite" env:"FREQREPORT_DRIVER"`
	Width     int    `help:"Chart width in pixels." default:"1000" env:"FREQREPORT_CHART_WIDTH"`
	OutputDir string `short:"o" help:"Directory holding graphs/ and receiving frequencyreport.html." default:"." env:"FREQREPORT_OUTPUT_DIR"`
	Renderer  string `help:"Chart format." enum:"png,echarts" default:"png" env:"FREQREPORT_RENDERER"`
	Strategy  string `help:"Frequency query strategy." enum:"grouped,per-value" default:"grouped" env:"FREQREPORT_STRATEGY"`
	Sort      string `help:"Ordering of non-numeric values: fall back to text order, or fail." enum:"numeric-fallback,strict" default:"numeric-fallback" env:"FREQREPORT_SORT"`
	ChartFont string `help:"TrueType font used for chart text." env:"FREQREPORT_CHART_FONT"`
	Summary   bool   `help:"Print each column's frequency table to the terminal." env:"FREQREPORT_SUMMARY"`
	Verbose   bool   `short:"v" help:"Log SQL statements."`
}

func (c *CLI) Config() *config.Config {
	return &config.Config{
		DatabasePath: c.Database,
		TableName:    c.Table,
		Driver:       c.Driver,
		ChartWidth:   c.Width,
		OutputDir:    c.OutputDir,
		Renderer:     c.Renderer,
		Strategy:     c.Strategy,
		SortPolicy:   c.Sort,
		ChartFont:    c.ChartFont,
		Summary:      c.Summary,
		Verbose:      c.Verbose,
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("freqreport: ")

	if err := config.LoadEnv(); err != nil {
		log.Fatalln(err)
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("freqreport"),
		kong.Description("Chart the value frequencies of every column of a database table into an HTML report."),
		kong.UsageOnError(),
	)

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		kctx.FatalIfErrorf(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := generateFrequencyReport(ctx, cfg, color.Output)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
