package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/freq_report/config"
	"github.com/pivolan/freq_report/domain/models"
)

// createFixture writes a SQLite file holding the given DDL and inserts.
func createFixture(t *testing.T, statements ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

func openFixture(t *testing.T, table string, statements ...string) *Source {
	t.Helper()
	src, err := Open(config.DriverSQLite, createFixture(t, statements...), table, false)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

func surveyFixture(t *testing.T) *Source {
	return openFixture(t, "survey",
		"CREATE TABLE survey (age INTEGER, color TEXT, \"group\" TEXT)",
		"INSERT INTO survey VALUES (5, 'red', 'a'), (5, 'red', 'b'), (7, 'blue', 'a'), (NULL, '', NULL), (9, NULL, 'a')",
	)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(config.DriverSQLite, filepath.Join(t.TempDir(), "missing.db"), "data", false)
	assert.ErrorIs(t, err, models.ErrConnection)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "x", "data", false)
	assert.ErrorIs(t, err, models.ErrConnection)
}

func TestRowCount(t *testing.T) {
	src := surveyFixture(t)
	n, err := src.RowCount(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestRowCountMissingTable(t *testing.T) {
	src := openFixture(t, "nope", "CREATE TABLE survey (age INTEGER)")
	_, err := src.RowCount(context.Background())
	assert.ErrorIs(t, err, models.ErrSchema)
}

func TestListColumns(t *testing.T) {
	src := surveyFixture(t)
	columns, err := src.ListColumns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.ColumnInfo{
		{Name: "age", Type: "INTEGER"},
		{Name: "color", Type: "TEXT"},
		{Name: "group", Type: "TEXT"},
	}, columns)
}

func TestListColumnsMissingTable(t *testing.T) {
	src := openFixture(t, "nope", "CREATE TABLE survey (age INTEGER)")
	_, err := src.ListColumns(context.Background())
	assert.ErrorIs(t, err, models.ErrSchema)
}

func TestDistinctValues(t *testing.T) {
	src := surveyFixture(t)
	values, err := src.DistinctValues(context.Background(), "color")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"red", "blue", ""}, values)
}

func TestCountOccurrences(t *testing.T) {
	src := surveyFixture(t)
	ctx := context.Background()

	n, err := src.CountOccurrences(ctx, "age", "5")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = src.CountOccurrences(ctx, "color", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n, "NULL and '' share the empty bucket")

	n, err = src.CountOccurrences(ctx, "group", "a")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestFrequenciesStrategiesAgree(t *testing.T) {
	src := surveyFixture(t)
	ctx := context.Background()

	expected := map[string]models.FrequencyTable{
		"age":   {"5": 2, "7": 1, "9": 1, "": 1},
		"color": {"red": 2, "blue": 1, "": 2},
		"group": {"a": 3, "b": 1, "": 1},
	}
	for column, want := range expected {
		grouped, err := src.Frequencies(ctx, column, config.StrategyGrouped)
		require.NoError(t, err)
		perValue, err := src.Frequencies(ctx, column, config.StrategyPerValue)
		require.NoError(t, err)

		assert.Equal(t, want, grouped, column)
		assert.Equal(t, want, perValue, column)
		assert.EqualValues(t, 5, grouped.Total(), column)
	}
}

func TestFrequenciesTextualKeys(t *testing.T) {
	src := openFixture(t, "data",
		"CREATE TABLE data (v)",
		"INSERT INTO data VALUES (5), ('5'), (5.5), ('05')",
	)
	freqs, err := src.Frequencies(context.Background(), "v", config.StrategyGrouped)
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyTable{"5": 2, "5.5": 1, "05": 1}, freqs)
}
