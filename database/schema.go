package database

import (
	"context"
	"fmt"

	"github.com/pivolan/freq_report/config"
	"github.com/pivolan/freq_report/domain/models"
)

const (
	sqliteColumnsQuery = "SELECT name, type FROM pragma_table_info(?) ORDER BY cid"
	mysqlColumnsQuery  = "SELECT column_name AS name, column_type AS type FROM information_schema.columns " +
		"WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"
)

// ListColumns returns the table's columns in declaration order.
func (s *Source) ListColumns(ctx context.Context) ([]models.ColumnInfo, error) {
	query := sqliteColumnsQuery
	if s.db.Dialector.Name() == config.DriverMySQL {
		query = mysqlColumnsQuery
	}

	var columns []models.ColumnInfo
	if err := s.db.WithContext(ctx).Raw(query, s.table).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrSchema, s.table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %q does not exist", models.ErrSchema, s.table)
	}
	return columns, nil
}
