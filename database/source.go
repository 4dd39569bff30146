// Package database reads table schema and value frequencies through gorm.
package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/freq_report/config"
	"github.com/pivolan/freq_report/domain/models"
)

// Source is a read-only handle on one table of one database.
type Source struct {
	db       *gorm.DB
	table    string
	textType string
}

// Open connects to the database and binds the returned Source to table.
// SQLite files are opened read-only, so a missing file is reported instead
// of silently created.
func Open(driver, dsn, table string, verbose bool) (*Source, error) {
	var (
		dialector gorm.Dialector
		textType  string
	)
	switch driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(readOnlyDSN(dsn))
		textType = "TEXT"
	case config.DriverMySQL:
		dialector = mysql.Open(dsn)
		textType = "CHAR"
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", models.ErrConnection, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger(verbose)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConnection, err)
	}
	return &Source{db: db, table: table, textType: textType}, nil
}

func newLogger(verbose bool) logger.Interface {
	if !verbose {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.New(log.New(os.Stderr, "\n", log.LstdFlags), logger.Config{
		SlowThreshold: time.Second,
		LogLevel:      logger.Info,
		Colorful:      true,
	})
}

func readOnlyDSN(path string) string {
	return fmt.Sprintf("file:%s?mode=ro", filepath.ToSlash(path))
}

func (s *Source) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RowCount returns the number of rows in the table.
func (s *Source) RowCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Table(s.table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: count rows of %s: %w", models.ErrSchema, s.table, err)
	}
	return n, nil
}
