package models

import (
	"context"
	"fmt"

	"github.com/merchantdata/estate_reporting_backend/config"
)

// Transaction aggregate queries. Only completed transactions contribute to
// the aggregates; in-flight authorisations are excluded. Value is summed per
// currency code, never across currencies, so every result row is one
// (dimension key, currency) pair.

// TransactionsByDay returns per-day totals over the window. Sparse by default;
// REPORTING_FILL_EMPTY_DAYS emits the complete calendar series with zero rows.
// Day series are never record-count limited.
func TransactionsByDay(ctx context.Context, q AggregateQuery) ([]DayAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND t.merchant_id = ?"
		args = append(args, q.MerchantId)
	}

	var rows []DayAggregateRow
	query := fmt.Sprintf(`
		SELECT t.transaction_date AS stat_date, t.currency_code,
		       COUNT(*) AS total_count, SUM(t.amount) AS total_value
		FROM transactions t
		WHERE t.estate_id = ? AND t.is_completed = 1
		  AND t.transaction_date BETWEEN ? AND ?%s
		GROUP BY t.transaction_date, t.currency_code
		ORDER BY %s`, merchantFilter, q.orderClause("t.transaction_date", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("transactions by day: %w", err)
	}

	if config.FillEmptyCalendarDays() {
		rows = fillEmptyDays(rows, q.StartDate, q.EndDate)
		sortDayRows(rows, q)
	}
	return rows, nil
}

// TransactionsByWeek groups by ISO week and ISO week-year, so days around the
// Dec/Jan boundary land in the neighbouring year's week instead of splitting
// a week across two groups.
func TransactionsByWeek(ctx context.Context, q AggregateQuery) ([]WeekAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND t.merchant_id = ?"
		args = append(args, q.MerchantId)
	}

	var rows []WeekAggregateRow
	query := fmt.Sprintf(`
		SELECT YEARWEEK(t.transaction_date, 3) DIV 100 AS week_year,
		       YEARWEEK(t.transaction_date, 3) MOD 100 AS week_number,
		       t.currency_code,
		       COUNT(*) AS total_count, SUM(t.amount) AS total_value
		FROM transactions t
		WHERE t.estate_id = ? AND t.is_completed = 1
		  AND t.transaction_date BETWEEN ? AND ?%s
		GROUP BY YEARWEEK(t.transaction_date, 3), t.currency_code
		ORDER BY %s`, merchantFilter, q.orderClause("week_year", "week_number", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("transactions by week: %w", err)
	}
	return rows, nil
}

func TransactionsByMonth(ctx context.Context, q AggregateQuery) ([]MonthAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND t.merchant_id = ?"
		args = append(args, q.MerchantId)
	}

	var rows []MonthAggregateRow
	query := fmt.Sprintf(`
		SELECT YEAR(t.transaction_date) AS year_number,
		       MONTH(t.transaction_date) AS month_number,
		       t.currency_code,
		       COUNT(*) AS total_count, SUM(t.amount) AS total_value
		FROM transactions t
		WHERE t.estate_id = ? AND t.is_completed = 1
		  AND t.transaction_date BETWEEN ? AND ?%s
		GROUP BY YEAR(t.transaction_date), MONTH(t.transaction_date), t.currency_code
		ORDER BY %s`, merchantFilter, q.orderClause("year_number", "month_number", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("transactions by month: %w", err)
	}
	return rows, nil
}

// TransactionsByMerchant returns the top (or bottom) merchant groups, limited
// to the requested record count (default 5 when non-positive).
func TransactionsByMerchant(ctx context.Context, q AggregateQuery) ([]MerchantAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	var rows []MerchantAggregateRow
	query := fmt.Sprintf(`
		SELECT t.merchant_id, t.currency_code,
		       COUNT(*) AS total_count, SUM(t.amount) AS total_value
		FROM transactions t
		WHERE t.estate_id = ? AND t.is_completed = 1
		  AND t.transaction_date BETWEEN ? AND ?
		GROUP BY t.merchant_id, t.currency_code
		ORDER BY %s
		LIMIT ?`, q.orderClause("t.merchant_id", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).
		Raw(query, q.EstateId, q.StartDate, q.EndDate, q.RecordCount).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("transactions by merchant: %w", err)
	}
	return rows, nil
}

func TransactionsByOperator(ctx context.Context, q AggregateQuery) ([]OperatorAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND t.merchant_id = ?"
		args = append(args, q.MerchantId)
	}
	args = append(args, q.RecordCount)

	var rows []OperatorAggregateRow
	query := fmt.Sprintf(`
		SELECT t.operator_identifier, t.currency_code,
		       COUNT(*) AS total_count, SUM(t.amount) AS total_value
		FROM transactions t
		WHERE t.estate_id = ? AND t.is_completed = 1
		  AND t.transaction_date BETWEEN ? AND ?%s
		GROUP BY t.operator_identifier, t.currency_code
		ORDER BY %s
		LIMIT ?`, merchantFilter, q.orderClause("t.operator_identifier", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("transactions by operator: %w", err)
	}
	return rows, nil
}
