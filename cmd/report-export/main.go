package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/merchantdata/estate_reporting_backend/config"
	"github.com/merchantdata/estate_reporting_backend/models"
	"github.com/merchantdata/estate_reporting_backend/reportexport"
	"github.com/merchantdata/estate_reporting_backend/utils"
)

func main() {
	estateID := flag.String("estate-id", "", "Estate to report on (required)")
	merchantID := flag.String("merchant-id", "", "Optional: scope to one merchant")
	from := flag.String("from", "", "Start date (YYYY-MM-DD, required)")
	to := flag.String("to", "", "End date (YYYY-MM-DD, required)")
	recordCount := flag.Int("record-count", 0, "Row limit for merchant/operator views (default 5)")
	sortField := flag.String("sort-field", "", "COUNT or VALUE (default COUNT)")
	sortDirection := flag.String("sort-direction", "", "ASC or DESC (default DESC)")
	out := flag.String("out", "", "Output file path; empty uploads to GCS instead")
	object := flag.String("object", "", "GCS object name when uploading (defaults to a dated name)")
	overwrite := flag.Bool("overwrite", false, "Replace the GCS object if it already exists")
	flag.Parse()

	if strings.TrimSpace(*estateID) == "" {
		fmt.Fprintln(os.Stderr, "-estate-id is required")
		os.Exit(1)
	}

	startDate, err := utils.ParseCalendarDate(*from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -from: %v\n", err)
		os.Exit(1)
	}
	endDate, err := utils.ParseCalendarDate(*to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -to: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	q := models.AggregateQuery{
		EstateId:      strings.TrimSpace(*estateID),
		MerchantId:    strings.TrimSpace(*merchantID),
		StartDate:     startDate,
		EndDate:       endDate,
		RecordCount:   *recordCount,
		SortField:     models.SortField(strings.ToUpper(strings.TrimSpace(*sortField))),
		SortDirection: models.SortDirection(strings.ToUpper(strings.TrimSpace(*sortDirection))),
	}

	f, err := reportexport.BuildWorkbook(ctx, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build workbook: %v\n", err)
		os.Exit(1)
	}

	if strings.TrimSpace(*out) != "" {
		if err := f.SaveAs(strings.TrimSpace(*out)); err != nil {
			fmt.Fprintf(os.Stderr, "save workbook: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *out)
		return
	}

	objectName := strings.TrimSpace(*object)
	if objectName == "" {
		objectName = fmt.Sprintf("reports/%s/estate-report-%s-%s.xlsx",
			q.EstateId, startDate.Format(utils.CalendarDateLayout), endDate.Format(utils.CalendarDateLayout))
	}
	if !*overwrite {
		exists, err := utils.ObjectExistsInGCS(ctx, objectName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "check object %s: %v\n", objectName, err)
			os.Exit(1)
		}
		if exists {
			fmt.Fprintf(os.Stderr, "object %s already exists; pass -overwrite to replace it\n", objectName)
			os.Exit(1)
		}
	}
	if err := reportexport.UploadWorkbook(ctx, f, objectName); err != nil {
		fmt.Fprintf(os.Stderr, "upload workbook: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report uploaded to %s\n", objectName)
}
