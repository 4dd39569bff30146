package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pivolan/go_utils"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	RendererPNG     = "png"
	RendererECharts = "echarts"

	StrategyGrouped  = "grouped"
	StrategyPerValue = "per-value"

	SortNumericFallback = "numeric-fallback"
	SortStrict          = "strict"

	DefaultChartWidth = 1000
	DefaultOutputDir  = "."

	ReportFileName = "frequencyreport.html"
	GraphsDirName  = "graphs"
)

var (
	ErrMissingDatabase = errors.New("database path is required")
	ErrMissingTable    = errors.New("table name is required")
	ErrInvalidWidth    = errors.New("chart width must be positive")
	ErrUnknownOption   = errors.New("unknown option value")
)

type Config struct {
	DatabasePath string
	TableName    string
	Driver       string
	ChartWidth   int
	OutputDir    string
	Renderer     string
	Strategy     string
	SortPolicy   string
	ChartFont    string
	Summary      bool
	Verbose      bool
}

func Default() *Config {
	return &Config{
		Driver:     DriverSQLite,
		ChartWidth: DefaultChartWidth,
		OutputDir:  DefaultOutputDir,
		Renderer:   RendererPNG,
		Strategy:   StrategyGrouped,
		SortPolicy: SortNumericFallback,
	}
}

// LoadEnv reads .env files into the process environment. Missing files are
// not an error, values already present in the environment win.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		err := godotenv.Load(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return ErrMissingDatabase
	}
	if c.TableName == "" {
		return ErrMissingTable
	}
	if c.ChartWidth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, c.ChartWidth)
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	checks := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"driver", c.Driver, []string{DriverSQLite, DriverMySQL}},
		{"renderer", c.Renderer, []string{RendererPNG, RendererECharts}},
		{"strategy", c.Strategy, []string{StrategyGrouped, StrategyPerValue}},
		{"sort", c.SortPolicy, []string{SortNumericFallback, SortStrict}},
	}
	for _, check := range checks {
		if !go_utils.InArray(check.value, check.allowed) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, check.name, check.value)
		}
	}
	return nil
}

func (c *Config) ReportPath() string {
	return filepath.Join(c.OutputDir, ReportFileName)
}

func (c *Config) GraphsDir() string {
	return filepath.Join(c.OutputDir, GraphsDirName)
}
