package database

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/pivolan/freq_report/config"
	"github.com/pivolan/freq_report/domain/models"
)

// textExpr renders a column as text with NULL folded into the empty string.
func (s *Source) textExpr() string {
	return fmt.Sprintf("COALESCE(CAST(? AS %s), '')", s.textType)
}

// DistinctValues lists the distinct textual values of column. NULL is
// reported as "".
func (s *Source) DistinctValues(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := s.db.WithContext(ctx).
		Raw("SELECT DISTINCT "+s.textExpr()+" FROM ?", clause.Column{Name: column}, clause.Table{Name: s.table}).
		Scan(&values).Error
	if err != nil {
		return nil, fmt.Errorf("%w: distinct values of %s.%s: %w", models.ErrSchema, s.table, column, err)
	}
	return values, nil
}

// CountOccurrences counts rows whose column equals value in textual form.
// The empty value matches both NULL and ''.
func (s *Source) CountOccurrences(ctx context.Context, column, value string) (int64, error) {
	col := clause.Column{Name: column}
	tx := s.db.WithContext(ctx).Table(s.table)
	if value == "" {
		tx = tx.Where(fmt.Sprintf("? IS NULL OR CAST(? AS %s) = ''", s.textType), col, col)
	} else {
		tx = tx.Where(fmt.Sprintf("CAST(? AS %s) = ?", s.textType), col, value)
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: count %s.%s = %q: %w", models.ErrSchema, s.table, column, value, err)
	}
	return n, nil
}

// Frequencies builds the frequency table of column with the given strategy.
func (s *Source) Frequencies(ctx context.Context, column, strategy string) (models.FrequencyTable, error) {
	if strategy == config.StrategyPerValue {
		return s.frequenciesPerValue(ctx, column)
	}
	return s.frequenciesGrouped(ctx, column)
}

func (s *Source) frequenciesGrouped(ctx context.Context, column string) (models.FrequencyTable, error) {
	var rows []models.ValueCount
	err := s.db.WithContext(ctx).
		Raw("SELECT "+s.textExpr()+" AS value_text, COUNT(*) AS frequency FROM ? GROUP BY 1",
			clause.Column{Name: column}, clause.Table{Name: s.table}).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: group %s.%s: %w", models.ErrSchema, s.table, column, err)
	}

	freqs := make(models.FrequencyTable, len(rows))
	for _, r := range rows {
		freqs[r.Value] += r.Count
	}
	return freqs, nil
}

func (s *Source) frequenciesPerValue(ctx context.Context, column string) (models.FrequencyTable, error) {
	values, err := s.DistinctValues(ctx, column)
	if err != nil {
		return nil, err
	}
	freqs := make(models.FrequencyTable, len(values))
	for _, v := range values {
		n, err := s.CountOccurrences(ctx, column, v)
		if err != nil {
			return nil, err
		}
		freqs[v] = n
	}
	return freqs, nil
}
