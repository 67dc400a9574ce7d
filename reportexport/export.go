package reportexport

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/merchantdata/estate_reporting_backend/models"
	"github.com/merchantdata/estate_reporting_backend/utils"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BuildWorkbook renders every aggregate view for the window into one
// spreadsheet, one sheet per view.
func BuildWorkbook(ctx context.Context, q models.AggregateQuery) (*excelize.File, error) {
	f := excelize.NewFile()

	txnDays, err := models.TransactionsByDay(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeDaySheet(f, "Transactions By Day", txnDays); err != nil {
		return nil, err
	}

	txnWeeks, err := models.TransactionsByWeek(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeWeekSheet(f, "Transactions By Week", txnWeeks); err != nil {
		return nil, err
	}

	txnMonths, err := models.TransactionsByMonth(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeMonthSheet(f, "Transactions By Month", txnMonths); err != nil {
		return nil, err
	}

	txnMerchants, err := models.TransactionsByMerchant(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeMerchantSheet(f, "Transactions By Merchant", txnMerchants); err != nil {
		return nil, err
	}

	txnOperators, err := models.TransactionsByOperator(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeOperatorSheet(f, "Transactions By Operator", txnOperators); err != nil {
		return nil, err
	}

	setDays, err := models.SettlementsByDay(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeDaySheet(f, "Settlements By Day", setDays); err != nil {
		return nil, err
	}

	setWeeks, err := models.SettlementsByWeek(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeWeekSheet(f, "Settlements By Week", setWeeks); err != nil {
		return nil, err
	}

	setMonths, err := models.SettlementsByMonth(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeMonthSheet(f, "Settlements By Month", setMonths); err != nil {
		return nil, err
	}

	setMerchants, err := models.SettlementsByMerchant(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeMerchantSheet(f, "Settlements By Merchant", setMerchants); err != nil {
		return nil, err
	}

	setOperators, err := models.SettlementsByOperator(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := writeOperatorSheet(f, "Settlements By Operator", setOperators); err != nil {
		return nil, err
	}

	// Drop the implicit default sheet.
	f.DeleteSheet("Sheet1")
	return f, nil
}

// UploadWorkbook writes the workbook to the configured GCS bucket.
func UploadWorkbook(ctx context.Context, f *excelize.File, objectName string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	return utils.UploadBytesToGCS(ctx, objectName, buf.Bytes(), xlsxContentType)
}

// ExportHandler streams the aggregate workbook as an xlsx download.
func ExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := queryFromRequest(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		f, err := BuildWorkbook(c.Request.Context(), q)
		if err != nil {
			var rangeErr *utils.InvalidRangeError
			var validationErrs validator.ValidationErrors
			switch {
			case errors.As(err, &validationErrs):
				c.JSON(400, gin.H{"errors": utils.ProcessValidationErrors(err)})
			case errors.As(err, &rangeErr):
				c.JSON(400, gin.H{"error": err.Error()})
			default:
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}

		filename := fmt.Sprintf("estate-report-%s-%s.xlsx",
			q.StartDate.Format(utils.CalendarDateLayout), q.EndDate.Format(utils.CalendarDateLayout))
		c.Header("Content-Type", xlsxContentType)
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := f.Write(c.Writer); err != nil {
			c.Status(500)
		}
	}
}

func queryFromRequest(c *gin.Context) (models.AggregateQuery, error) {
	startDate, err := utils.ParseCalendarDate(c.Query("start_date"))
	if err != nil {
		return models.AggregateQuery{}, err
	}
	endDate, err := utils.ParseCalendarDate(c.Query("end_date"))
	if err != nil {
		return models.AggregateQuery{}, err
	}

	q := models.AggregateQuery{
		EstateId:      c.Query("estate_id"),
		MerchantId:    c.Query("merchant_id"),
		StartDate:     startDate,
		EndDate:       endDate,
		SortField:     models.SortField(c.Query("sort_field")),
		SortDirection: models.SortDirection(c.Query("sort_direction")),
	}
	if raw := c.Query("record_count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return models.AggregateQuery{}, fmt.Errorf("invalid record_count %q", raw)
		}
		q.RecordCount = count
	}
	return q, nil
}

func writeHeader(f *excelize.File, sheet string, headings ...string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	col := 'A'
	for _, h := range headings {
		if err := f.SetCellValue(sheet, string(col)+"1", h); err != nil {
			return err
		}
		col++
	}
	return nil
}

func writeDaySheet(f *excelize.File, sheet string, rows []models.DayAggregateRow) error {
	if err := writeHeader(f, sheet, "Date", "Currency", "Count", "Value"); err != nil {
		return err
	}
	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, r.Date.Format(utils.CalendarDateLayout))
		f.SetCellValue(sheet, "B"+row, r.CurrencyCode)
		f.SetCellValue(sheet, "C"+row, r.TotalCount)
		f.SetCellValue(sheet, "D"+row, r.TotalValue.String())
	}
	return nil
}

func writeWeekSheet(f *excelize.File, sheet string, rows []models.WeekAggregateRow) error {
	if err := writeHeader(f, sheet, "WeekYear", "Week", "Currency", "Count", "Value"); err != nil {
		return err
	}
	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, r.WeekYear)
		f.SetCellValue(sheet, "B"+row, r.WeekNumber)
		f.SetCellValue(sheet, "C"+row, r.CurrencyCode)
		f.SetCellValue(sheet, "D"+row, r.TotalCount)
		f.SetCellValue(sheet, "E"+row, r.TotalValue.String())
	}
	return nil
}

func writeMonthSheet(f *excelize.File, sheet string, rows []models.MonthAggregateRow) error {
	if err := writeHeader(f, sheet, "Year", "Month", "Currency", "Count", "Value"); err != nil {
		return err
	}
	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, r.Year)
		f.SetCellValue(sheet, "B"+row, time.Month(r.MonthNumber).String())
		f.SetCellValue(sheet, "C"+row, r.CurrencyCode)
		f.SetCellValue(sheet, "D"+row, r.TotalCount)
		f.SetCellValue(sheet, "E"+row, r.TotalValue.String())
	}
	return nil
}

func writeMerchantSheet(f *excelize.File, sheet string, rows []models.MerchantAggregateRow) error {
	if err := writeHeader(f, sheet, "MerchantId", "Currency", "Count", "Value"); err != nil {
		return err
	}
	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, r.MerchantId)
		f.SetCellValue(sheet, "B"+row, r.CurrencyCode)
		f.SetCellValue(sheet, "C"+row, r.TotalCount)
		f.SetCellValue(sheet, "D"+row, r.TotalValue.String())
	}
	return nil
}

func writeOperatorSheet(f *excelize.File, sheet string, rows []models.OperatorAggregateRow) error {
	if err := writeHeader(f, sheet, "Operator", "Currency", "Count", "Value"); err != nil {
		return err
	}
	for i, r := range rows {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, r.OperatorIdentifier)
		f.SetCellValue(sheet, "B"+row, r.CurrencyCode)
		f.SetCellValue(sheet, "C"+row, r.TotalCount)
		f.SetCellValue(sheet, "D"+row, r.TotalValue.String())
	}
	return nil
}
