package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	c := Default()
	c.DatabasePath = "survey.db"
	c.TableName = "data"
	require.NoError(t, c.Validate())
	assert.Equal(t, 1000, c.ChartWidth)
	assert.Equal(t, filepath.Join(".", "frequencyreport.html"), c.ReportPath())
	assert.Equal(t, filepath.Join(".", "graphs"), c.GraphsDir())
}

func TestValidateErrors(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		err    error
	}{
		"missing db":    {func(c *Config) { c.DatabasePath = "" }, ErrMissingDatabase},
		"missing table": {func(c *Config) { c.TableName = "" }, ErrMissingTable},
		"zero width":    {func(c *Config) { c.ChartWidth = 0 }, ErrInvalidWidth},
		"bad driver":    {func(c *Config) { c.Driver = "postgres" }, ErrUnknownOption},
		"bad renderer":  {func(c *Config) { c.Renderer = "svg" }, ErrUnknownOption},
		"bad strategy":  {func(c *Config) { c.Strategy = "sampled" }, ErrUnknownOption},
		"bad sort":      {func(c *Config) { c.SortPolicy = "random" }, ErrUnknownOption},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			c.DatabasePath = "survey.db"
			c.TableName = "data"
			tc.mutate(c)
			assert.ErrorIs(t, c.Validate(), tc.err)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FREQREPORT_TEST_TABLE=survey\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("FREQREPORT_TEST_TABLE") })

	require.NoError(t, LoadEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "survey", os.Getenv("FREQREPORT_TEST_TABLE"))
}
