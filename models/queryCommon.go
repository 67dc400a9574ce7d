package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/merchantdata/estate_reporting_backend/utils"
	"github.com/shopspring/decimal"
)

// DefaultRecordCount is substituted when a caller passes a non-positive
// record count to an entity-bucketed query. Legacy default; downstream
// dashboards depend on it.
const DefaultRecordCount = 5

// AggregateQuery carries the caller inputs shared by every aggregate query.
// MerchantId is optional; when set, results are scoped to that merchant.
type AggregateQuery struct {
	EstateId      string    `validate:"required"`
	MerchantId    string
	StartDate     time.Time `validate:"required"`
	EndDate       time.Time `validate:"required"`
	RecordCount   int
	SortField     SortField
	SortDirection SortDirection
}

// validateAndNormalize rejects bad input before any storage is touched, then
// fills the legacy defaults.
func (q AggregateQuery) validateAndNormalize() (AggregateQuery, error) {
	if err := utils.ValidateStruct(q); err != nil {
		return q, err
	}
	q.StartDate = utils.TruncateToDay(q.StartDate)
	q.EndDate = utils.TruncateToDay(q.EndDate)
	if err := utils.ValidateDateRange(q.StartDate, q.EndDate); err != nil {
		return q, err
	}
	if q.RecordCount <= 0 {
		q.RecordCount = DefaultRecordCount
	}
	if q.SortField != SortFieldValue {
		q.SortField = SortFieldCount
	}
	if q.SortDirection != SortAscending {
		q.SortDirection = SortDescending
	}
	return q, nil
}

// orderClause builds the ORDER BY for an aggregate query. The measure columns
// are always aliased total_count/total_value; tieBreak lists the dimension
// key columns appended ascending so result order is deterministic.
func (q AggregateQuery) orderClause(tieBreak ...string) string {
	column := "total_count"
	if q.SortField == SortFieldValue {
		column = "total_value"
	}
	clause := fmt.Sprintf("%s %s", column, q.SortDirection)
	for _, key := range tieBreak {
		clause += fmt.Sprintf(", %s ASC", key)
	}
	return clause
}

// DayAggregateRow is one (calendar day, currency) aggregate.
type DayAggregateRow struct {
	Date         time.Time       `gorm:"column:stat_date" json:"date"`
	CurrencyCode string          `json:"currency_code"`
	TotalCount   int64           `gorm:"column:total_count" json:"total_count"`
	TotalValue   decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

// WeekAggregateRow is one (ISO week-year, ISO week, currency) aggregate.
type WeekAggregateRow struct {
	WeekYear     int             `gorm:"column:week_year" json:"week_year"`
	WeekNumber   int             `gorm:"column:week_number" json:"week_number"`
	CurrencyCode string          `json:"currency_code"`
	TotalCount   int64           `gorm:"column:total_count" json:"total_count"`
	TotalValue   decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

// MonthAggregateRow is one (calendar year, month, currency) aggregate.
type MonthAggregateRow struct {
	Year         int             `gorm:"column:year_number" json:"year"`
	MonthNumber  int             `gorm:"column:month_number" json:"month_number"`
	CurrencyCode string          `json:"currency_code"`
	TotalCount   int64           `gorm:"column:total_count" json:"total_count"`
	TotalValue   decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

// MerchantAggregateRow is one (merchant, currency) aggregate.
type MerchantAggregateRow struct {
	MerchantId   string          `json:"merchant_id"`
	CurrencyCode string          `json:"currency_code"`
	TotalCount   int64           `gorm:"column:total_count" json:"total_count"`
	TotalValue   decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

// OperatorAggregateRow is one (operator, currency) aggregate.
type OperatorAggregateRow struct {
	OperatorIdentifier string          `json:"operator_identifier"`
	CurrencyCode       string          `json:"currency_code"`
	TotalCount         int64           `gorm:"column:total_count" json:"total_count"`
	TotalValue         decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

// fillEmptyDays inserts a zero row for every in-range day missing from rows,
// one per currency already present in the result. Used when
// REPORTING_FILL_EMPTY_DAYS asks for a complete calendar series.
func fillEmptyDays(rows []DayAggregateRow, startDate, endDate time.Time) []DayAggregateRow {
	currencies := map[string]bool{}
	for _, r := range rows {
		currencies[r.CurrencyCode] = true
	}
	if len(currencies) == 0 {
		return rows
	}

	seen := map[string]bool{}
	for _, r := range rows {
		seen[r.Date.Format(utils.CalendarDateLayout)+"|"+r.CurrencyCode] = true
	}
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		for currency := range currencies {
			key := day.Format(utils.CalendarDateLayout) + "|" + currency
			if seen[key] {
				continue
			}
			rows = append(rows, DayAggregateRow{
				Date:         day,
				CurrencyCode: currency,
				TotalCount:   0,
				TotalValue:   decimal.Zero,
			})
		}
	}
	return rows
}

// sortDayRows reapplies the query's sort contract after zero-day filling:
// chosen measure first, then date and currency ascending as tie breaks.
func sortDayRows(rows []DayAggregateRow, q AggregateQuery) {
	sort.SliceStable(rows, func(i, j int) bool {
		var less, equal bool
		if q.SortField == SortFieldValue {
			cmp := rows[i].TotalValue.Cmp(rows[j].TotalValue)
			less, equal = cmp < 0, cmp == 0
		} else {
			less = rows[i].TotalCount < rows[j].TotalCount
			equal = rows[i].TotalCount == rows[j].TotalCount
		}
		if !equal {
			if q.SortDirection == SortDescending {
				return !less
			}
			return less
		}
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].CurrencyCode < rows[j].CurrencyCode
	})
}
