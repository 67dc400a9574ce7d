package models

import (
	"context"
	"fmt"

	"github.com/merchantdata/estate_reporting_backend/config"
)

// Settlement aggregate queries. The settlement fact is the fee row: count is
// the number of fees in the group, value the sum of their calculated values.
// Currency comes from the fee's originating transaction, so groups stay
// per-currency exactly like the transaction aggregates.

const settlementFactJoin = `
		FROM merchant_settlement_fees f
		JOIN settlements s
		  ON s.estate_id = f.estate_id AND s.settlement_id = f.settlement_id
		JOIN transactions t
		  ON t.estate_id = f.estate_id AND t.merchant_id = f.merchant_id AND t.transaction_id = f.transaction_id`

// SettlementsByDay follows the same sparse/complete-series policy as
// TransactionsByDay, bucketed on the settlement date.
func SettlementsByDay(ctx context.Context, q AggregateQuery) ([]DayAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND f.merchant_id = ?"
		args = append(args, q.MerchantId)
	}

	var rows []DayAggregateRow
	query := fmt.Sprintf(`
		SELECT s.settlement_date AS stat_date, t.currency_code,
		       COUNT(*) AS total_count, SUM(f.calculated_value) AS total_value%s
		WHERE f.estate_id = ?
		  AND s.settlement_date BETWEEN ? AND ?%s
		GROUP BY s.settlement_date, t.currency_code
		ORDER BY %s`, settlementFactJoin, merchantFilter, q.orderClause("s.settlement_date", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("settlements by day: %w", err)
	}

	if config.FillEmptyCalendarDays() {
		rows = fillEmptyDays(rows, q.StartDate, q.EndDate)
		sortDayRows(rows, q)
	}
	return rows, nil
}

func SettlementsByWeek(ctx context.Context, q AggregateQuery) ([]WeekAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND f.merchant_id = ?"
		args = append(args, q.MerchantId)
	}

	var rows []WeekAggregateRow
	query := fmt.Sprintf(`
		SELECT YEARWEEK(s.settlement_date, 3) DIV 100 AS week_year,
		       YEARWEEK(s.settlement_date, 3) MOD 100 AS week_number,
		       t.currency_code,
		       COUNT(*) AS total_count, SUM(f.calculated_value) AS total_value%s
		WHERE f.estate_id = ?
		  AND s.settlement_date BETWEEN ? AND ?%s
		GROUP BY YEARWEEK(s.settlement_date, 3), t.currency_code
		ORDER BY %s`, settlementFactJoin, merchantFilter, q.orderClause("week_year", "week_number", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("settlements by week: %w", err)
	}
	return rows, nil
}

func SettlementsByMonth(ctx context.Context, q AggregateQuery) ([]MonthAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND f.merchant_id = ?"
		args = append(args, q.MerchantId)
	}

	var rows []MonthAggregateRow
	query := fmt.Sprintf(`
		SELECT YEAR(s.settlement_date) AS year_number,
		       MONTH(s.settlement_date) AS month_number,
		       t.currency_code,
		       COUNT(*) AS total_count, SUM(f.calculated_value) AS total_value%s
		WHERE f.estate_id = ?
		  AND s.settlement_date BETWEEN ? AND ?%s
		GROUP BY YEAR(s.settlement_date), MONTH(s.settlement_date), t.currency_code
		ORDER BY %s`, settlementFactJoin, merchantFilter, q.orderClause("year_number", "month_number", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("settlements by month: %w", err)
	}
	return rows, nil
}

func SettlementsByMerchant(ctx context.Context, q AggregateQuery) ([]MerchantAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	var rows []MerchantAggregateRow
	query := fmt.Sprintf(`
		SELECT f.merchant_id, t.currency_code,
		       COUNT(*) AS total_count, SUM(f.calculated_value) AS total_value%s
		WHERE f.estate_id = ?
		  AND s.settlement_date BETWEEN ? AND ?
		GROUP BY f.merchant_id, t.currency_code
		ORDER BY %s
		LIMIT ?`, settlementFactJoin, q.orderClause("f.merchant_id", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).
		Raw(query, q.EstateId, q.StartDate, q.EndDate, q.RecordCount).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("settlements by merchant: %w", err)
	}
	return rows, nil
}

func SettlementsByOperator(ctx context.Context, q AggregateQuery) ([]OperatorAggregateRow, error) {
	q, err := q.validateAndNormalize()
	if err != nil {
		return nil, err
	}

	args := []interface{}{q.EstateId, q.StartDate, q.EndDate}
	merchantFilter := ""
	if q.MerchantId != "" {
		merchantFilter = " AND f.merchant_id = ?"
		args = append(args, q.MerchantId)
	}
	args = append(args, q.RecordCount)

	var rows []OperatorAggregateRow
	query := fmt.Sprintf(`
		SELECT t.operator_identifier, t.currency_code,
		       COUNT(*) AS total_count, SUM(f.calculated_value) AS total_value%s
		WHERE f.estate_id = ?
		  AND s.settlement_date BETWEEN ? AND ?%s
		GROUP BY t.operator_identifier, t.currency_code
		ORDER BY %s
		LIMIT ?`, settlementFactJoin, merchantFilter, q.orderClause("t.operator_identifier", "t.currency_code"))
	if err := config.GetDB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("settlements by operator: %w", err)
	}
	return rows, nil
}
