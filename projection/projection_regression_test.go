package projection_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/merchantdata/estate_reporting_backend/config"
	"github.com/merchantdata/estate_reporting_backend/models"
	"github.com/merchantdata/estate_reporting_backend/projection"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func setupIntegration(t *testing.T) *projection.Projector {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "estate_reporting_test")

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	return projection.NewProjector(config.GetDB(), logrus.New())
}

// Re-delivered events must converge on the row already written, not error
// and not write a second row.
func TestProjection_Redelivery_SingleRow(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()

	balance := &projection.MerchantBalanceChangedEvent{
		EventId:          "bal-1",
		EstateId:         "est1",
		MerchantId:       "m1",
		AvailableBalance: decimal.NewFromInt(90),
		Balance:          decimal.NewFromInt(100),
		ChangeAmount:     decimal.NewFromInt(-10),
		Reference:        "txn-1",
		EntryDateTime:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	if err := p.Apply(ctx, balance); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := p.Apply(ctx, balance); err != nil {
		t.Fatalf("second apply should absorb the duplicate: %v", err)
	}

	var count int64
	if err := config.GetDB().WithContext(ctx).
		Model(&models.MerchantBalanceHistory{}).
		Where("event_id = ?", "bal-1").
		Count(&count).Error; err != nil {
		t.Fatalf("count balance rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 balance row, got %d", count)
	}

	auth := &projection.TransactionAuthorisedEvent{
		EventId:             "evt-1",
		EstateId:            "est1",
		MerchantId:          "m1",
		TransactionId:       "txn-1",
		TransactionDateTime: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		TransactionType:     "Sale",
		Amount:              decimal.NewFromInt(10),
		CurrencyCode:        "GBP",
		OperatorIdentifier:  "Safaricom",
	}
	if err := p.Apply(ctx, auth); err != nil {
		t.Fatalf("apply authorised: %v", err)
	}
	if err := p.Apply(ctx, auth); err != nil {
		t.Fatalf("re-apply authorised: %v", err)
	}
	if err := config.GetDB().WithContext(ctx).
		Model(&models.Transaction{}).
		Where("estate_id = ? AND merchant_id = ? AND transaction_id = ?", "est1", "m1", "txn-1").
		Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 transaction row, got %d", count)
	}
}

// A fee event arriving before its settlement-created event must still land,
// and the later settlement-created event must converge on the same row.
func TestProjection_FeeBeforeSettlementCreated_Converges(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()
	dueDate := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	fee := &projection.MerchantFeeAddedPendingSettlementEvent{
		EventId:               "fee-1",
		EstateId:              "est1",
		MerchantId:            "m1",
		TransactionId:         "txn-1",
		FeeId:                 "f1",
		CalculatedValue:       decimal.RequireFromString("0.50"),
		FeeCalculatedDateTime: time.Date(2024, 3, 15, 10, 3, 0, 0, time.UTC),
		SettlementDueDate:     dueDate,
	}
	if err := p.Apply(ctx, fee); err != nil {
		t.Fatalf("apply fee before settlement created: %v", err)
	}
	if err := p.Apply(ctx, &projection.SettlementCreatedForDateEvent{
		EventId:        "set-1",
		EstateId:       "est1",
		SettlementDate: dueDate,
	}); err != nil {
		t.Fatalf("apply settlement created after fee: %v", err)
	}

	// Opposite order for a second estate.
	if err := p.Apply(ctx, &projection.SettlementCreatedForDateEvent{
		EventId:        "set-2",
		EstateId:       "est2",
		SettlementDate: dueDate,
	}); err != nil {
		t.Fatalf("apply settlement created: %v", err)
	}
	fee2 := *fee
	fee2.EventId = "fee-2"
	fee2.EstateId = "est2"
	if err := p.Apply(ctx, &fee2); err != nil {
		t.Fatalf("apply fee after settlement created: %v", err)
	}

	db := config.GetDB().WithContext(ctx)
	for _, estate := range []string{"est1", "est2"} {
		var settlements []models.Settlement
		if err := db.Where("estate_id = ?", estate).Find(&settlements).Error; err != nil {
			t.Fatalf("%s: fetch settlements: %v", estate, err)
		}
		if len(settlements) != 1 {
			t.Fatalf("%s: expected 1 settlement, got %d", estate, len(settlements))
		}
		var fees []models.MerchantSettlementFee
		if err := db.Where("estate_id = ? AND settlement_id = ?", estate, settlements[0].SettlementId).
			Find(&fees).Error; err != nil {
			t.Fatalf("%s: fetch fees: %v", estate, err)
		}
		if len(fees) != 1 {
			t.Fatalf("%s: expected 1 fee on the settlement, got %d", estate, len(fees))
		}
	}

	// Both orders derive the same date-based settlement id.
	var est1, est2 models.Settlement
	if err := db.Where("estate_id = ?", "est1").First(&est1).Error; err != nil {
		t.Fatalf("fetch est1 settlement: %v", err)
	}
	if err := db.Where("estate_id = ?", "est2").First(&est2).Error; err != nil {
		t.Fatalf("fetch est2 settlement: %v", err)
	}
	if est1.SettlementId != est2.SettlementId {
		t.Fatalf("same date derived different ids: %s vs %s", est1.SettlementId, est2.SettlementId)
	}
}

// Targeted updates on rows that do not exist yet surface an ordering error so
// the delivery layer can redeliver; once the row exists the update succeeds.
func TestProjection_TargetedUpdateOrdering(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()

	completed := &projection.TransactionCompletedEvent{
		EventId:           "evt-2",
		EstateId:          "est1",
		MerchantId:        "m1",
		TransactionId:     "txn-1",
		CompletedDateTime: time.Date(2024, 3, 15, 10, 2, 0, 0, time.UTC),
	}
	err := p.Apply(ctx, completed)
	var orderingErr *projection.ProjectionOrderingError
	if !errors.As(err, &orderingErr) {
		t.Fatalf("expected ordering error before the transaction exists, got %v", err)
	}

	if err := p.Apply(ctx, &projection.TransactionAuthorisedEvent{
		EventId:             "evt-1",
		EstateId:            "est1",
		MerchantId:          "m1",
		TransactionId:       "txn-1",
		TransactionDateTime: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		TransactionType:     "Sale",
		Amount:              decimal.NewFromInt(10),
		CurrencyCode:        "GBP",
		OperatorIdentifier:  "Safaricom",
	}); err != nil {
		t.Fatalf("apply authorised: %v", err)
	}
	if err := p.Apply(ctx, completed); err != nil {
		t.Fatalf("apply completed after authorised: %v", err)
	}
	// Re-delivery of the completion is a no-op, not an error.
	if err := p.Apply(ctx, completed); err != nil {
		t.Fatalf("re-apply completed: %v", err)
	}

	var txn models.Transaction
	if err := config.GetDB().WithContext(ctx).
		Where("estate_id = ? AND merchant_id = ? AND transaction_id = ?", "est1", "m1", "txn-1").
		First(&txn).Error; err != nil {
		t.Fatalf("fetch transaction: %v", err)
	}
	if !txn.IsCompleted {
		t.Fatal("transaction not marked completed")
	}
}

// Settling a fee is a one-way transition: the settle event must find the fee
// row, flip is_settled once, and absorb redelivery without reversing.
func TestProjection_FeeSettlementLifecycle(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()
	dueDate := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	settlementId, err := projection.SettlementIDForDate(dueDate)
	if err != nil {
		t.Fatalf("derive settlement id: %v", err)
	}
	settle := &projection.MerchantFeeSettledEvent{
		EventId:         "settle-f1",
		EstateId:        "est1",
		MerchantId:      "m1",
		SettlementId:    settlementId.String(),
		TransactionId:   "txn-1",
		FeeId:           "f1",
		SettledDateTime: time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC),
	}

	var orderingErr *projection.ProjectionOrderingError
	if err := p.Apply(ctx, settle); !errors.As(err, &orderingErr) {
		t.Fatalf("expected ordering error before the fee exists, got %v", err)
	}

	if err := p.Apply(ctx, &projection.MerchantFeeAddedPendingSettlementEvent{
		EventId:               "fee-f1",
		EstateId:              "est1",
		MerchantId:            "m1",
		TransactionId:         "txn-1",
		FeeId:                 "f1",
		CalculatedValue:       decimal.RequireFromString("1.50"),
		FeeCalculatedDateTime: time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
		SettlementDueDate:     dueDate,
	}); err != nil {
		t.Fatalf("apply fee: %v", err)
	}
	if err := p.Apply(ctx, settle); err != nil {
		t.Fatalf("apply settle after fee: %v", err)
	}

	fetchFee := func() models.MerchantSettlementFee {
		t.Helper()
		var fee models.MerchantSettlementFee
		if err := config.GetDB().WithContext(ctx).
			Where("estate_id = ? AND settlement_id = ? AND transaction_id = ? AND fee_id = ?",
				"est1", settlementId.String(), "txn-1", "f1").
			First(&fee).Error; err != nil {
			t.Fatalf("fetch fee: %v", err)
		}
		return fee
	}
	if !fetchFee().IsSettled {
		t.Fatal("fee not marked settled")
	}

	if err := p.Apply(ctx, settle); err != nil {
		t.Fatalf("re-apply settle: %v", err)
	}
	if !fetchFee().IsSettled {
		t.Fatal("redelivery cleared the settled flag")
	}
	var count int64
	if err := config.GetDB().WithContext(ctx).
		Model(&models.MerchantSettlementFee{}).
		Where("estate_id = ?", "est1").
		Count(&count).Error; err != nil {
		t.Fatalf("count fees: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 fee row after redelivery, got %d", count)
	}
}

// Completing a settlement needs the settlement row to exist and stays
// completed across redelivery.
func TestProjection_SettlementCompletion(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()
	settlementDate := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	settlementId, err := projection.SettlementIDForDate(settlementDate)
	if err != nil {
		t.Fatalf("derive settlement id: %v", err)
	}
	completed := &projection.SettlementCompletedEvent{
		EventId:      "set-done-1",
		EstateId:     "est1",
		SettlementId: settlementId.String(),
	}

	var orderingErr *projection.ProjectionOrderingError
	if err := p.Apply(ctx, completed); !errors.As(err, &orderingErr) {
		t.Fatalf("expected ordering error before the settlement exists, got %v", err)
	}

	if err := p.Apply(ctx, &projection.SettlementCreatedForDateEvent{
		EventId:        "set-1",
		EstateId:       "est1",
		SettlementDate: settlementDate,
	}); err != nil {
		t.Fatalf("apply settlement created: %v", err)
	}
	if err := p.Apply(ctx, completed); err != nil {
		t.Fatalf("apply settlement completed: %v", err)
	}
	// Redelivery is a no-op, not an error.
	if err := p.Apply(ctx, completed); err != nil {
		t.Fatalf("re-apply settlement completed: %v", err)
	}

	var settlement models.Settlement
	if err := config.GetDB().WithContext(ctx).
		Where("estate_id = ? AND settlement_id = ?", "est1", settlementId.String()).
		First(&settlement).Error; err != nil {
		t.Fatalf("fetch settlement: %v", err)
	}
	if !settlement.IsCompleted {
		t.Fatal("settlement not marked completed")
	}
}

// A failed claim query must leave a trace in the log instead of vanishing.
func TestInboxProcessor_ClaimFailureLogged(t *testing.T) {
	p := setupIntegration(t)

	logger := logrus.New()
	hook := logtest.NewLocal(logger)
	processor := projection.NewInboxProcessor(
		config.GetDB(), logger, projection.NewDispatcher(p, logger), nil)
	processor.Interval = time.Hour

	// Make the claim query fail.
	if err := config.GetDB().Migrator().DropTable(&models.ProjectionInboxRecord{}); err != nil {
		t.Fatalf("drop inbox table: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	processor.Run(ctx)

	var logged bool
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "inbox claim failed") {
			logged = true
		}
	}
	if !logged {
		t.Fatal("claim failure was not logged")
	}
}

func applyTxn(t *testing.T, p *projection.Projector, estate, merchant, id, operator, currency string, amount int64, completed bool) {
	t.Helper()
	ctx := context.Background()
	if err := p.Apply(ctx, &projection.TransactionAuthorisedEvent{
		EventId:             "auth-" + id,
		EstateId:            estate,
		MerchantId:          merchant,
		TransactionId:       id,
		TransactionDateTime: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		TransactionType:     "Sale",
		Amount:              decimal.NewFromInt(amount),
		CurrencyCode:        currency,
		OperatorIdentifier:  operator,
	}); err != nil {
		t.Fatalf("apply authorised %s: %v", id, err)
	}
	if completed {
		if err := p.Apply(ctx, &projection.TransactionCompletedEvent{
			EventId:           "comp-" + id,
			EstateId:          estate,
			MerchantId:        merchant,
			TransactionId:     id,
			CompletedDateTime: time.Date(2024, 3, 15, 10, 2, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("apply completed %s: %v", id, err)
		}
	}
}

func TestAggregation_TransactionQueries(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()

	// Three completed GBP sales, one authorised-only, one declined, one USD.
	applyTxn(t, p, "est1", "m1", "t1", "Safaricom", "GBP", 10, true)
	applyTxn(t, p, "est1", "m1", "t2", "Safaricom", "GBP", 20, true)
	applyTxn(t, p, "est1", "m1", "t3", "Voucher", "GBP", 5, true)
	applyTxn(t, p, "est1", "m1", "t4", "Safaricom", "GBP", 99, false)
	applyTxn(t, p, "est1", "m1", "t5", "Safaricom", "USD", 7, true)
	if err := p.Apply(ctx, &projection.TransactionDeclinedEvent{
		EventId:             "auth-t6",
		EstateId:            "est1",
		MerchantId:          "m1",
		TransactionId:       "t6",
		TransactionDateTime: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		TransactionType:     "Sale",
		Amount:              decimal.NewFromInt(50),
		CurrencyCode:        "GBP",
		OperatorIdentifier:  "Safaricom",
		ResponseCode:        "1001",
	}); err != nil {
		t.Fatalf("apply declined: %v", err)
	}

	window := models.AggregateQuery{
		EstateId:  "est1",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	days, err := models.TransactionsByDay(ctx, window)
	if err != nil {
		t.Fatalf("TransactionsByDay: %v", err)
	}
	byCurrency := map[string]models.DayAggregateRow{}
	for _, r := range days {
		if r.TotalCount > 0 {
			byCurrency[r.CurrencyCode] = r
		}
	}
	gbp, found := byCurrency["GBP"]
	if !found {
		t.Fatal("no GBP day row")
	}
	if gbp.TotalCount != 3 {
		t.Errorf("GBP count = %d, want 3 (authorised-only and declined excluded)", gbp.TotalCount)
	}
	if !gbp.TotalValue.Equal(decimal.NewFromInt(35)) {
		t.Errorf("GBP value = %s, want 35", gbp.TotalValue)
	}
	usd, found := byCurrency["USD"]
	if !found {
		t.Fatal("no USD day row")
	}
	if usd.TotalCount != 1 || !usd.TotalValue.Equal(decimal.NewFromInt(7)) {
		t.Errorf("USD row = %d/%s, want 1/7", usd.TotalCount, usd.TotalValue)
	}

	operators, err := models.TransactionsByOperator(ctx, window)
	if err != nil {
		t.Fatalf("TransactionsByOperator: %v", err)
	}
	var voucher *models.OperatorAggregateRow
	for i := range operators {
		if operators[i].OperatorIdentifier == "Voucher" {
			voucher = &operators[i]
		}
	}
	if voucher == nil {
		t.Fatal("no Voucher operator row")
	}
	if voucher.TotalCount != 1 || !voucher.TotalValue.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Voucher row = %d/%s, want 1/5", voucher.TotalCount, voucher.TotalValue)
	}
}

func TestAggregation_MerchantLimitAndSort(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()

	// Seven merchants with distinct counts; merchant m7 the busiest.
	for m := 1; m <= 7; m++ {
		merchant := fmt.Sprintf("m%d", m)
		for n := 0; n < m; n++ {
			applyTxn(t, p, "est1", merchant, fmt.Sprintf("%s-t%d", merchant, n), "Safaricom", "GBP", 10, true)
		}
	}

	window := models.AggregateQuery{
		EstateId:  "est1",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	merchants, err := models.TransactionsByMerchant(ctx, window)
	if err != nil {
		t.Fatalf("TransactionsByMerchant: %v", err)
	}
	if len(merchants) != models.DefaultRecordCount {
		t.Fatalf("expected default of %d rows, got %d", models.DefaultRecordCount, len(merchants))
	}
	if merchants[0].MerchantId != "m7" || merchants[0].TotalCount != 7 {
		t.Errorf("top merchant = %s/%d, want m7/7", merchants[0].MerchantId, merchants[0].TotalCount)
	}
	for i := 1; i < len(merchants); i++ {
		if merchants[i].TotalCount > merchants[i-1].TotalCount {
			t.Errorf("rows not sorted by count descending at index %d", i)
		}
	}

	window.RecordCount = 2
	window.SortDirection = models.SortAscending
	merchants, err = models.TransactionsByMerchant(ctx, window)
	if err != nil {
		t.Fatalf("TransactionsByMerchant asc: %v", err)
	}
	if len(merchants) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(merchants))
	}
	if merchants[0].MerchantId != "m1" {
		t.Errorf("ascending top row = %s, want m1", merchants[0].MerchantId)
	}
}

func TestAggregation_SettlementQueries(t *testing.T) {
	p := setupIntegration(t)
	ctx := context.Background()
	dueDate := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	applyTxn(t, p, "est1", "m1", "t1", "Safaricom", "GBP", 100, true)
	applyTxn(t, p, "est1", "m2", "t2", "Voucher", "GBP", 200, true)

	for _, fee := range []struct{ merchant, txn, id, value string }{
		{"m1", "t1", "f1", "1.50"},
		{"m1", "t1", "f2", "0.50"},
		{"m2", "t2", "f3", "3.00"},
	} {
		if err := p.Apply(ctx, &projection.MerchantFeeAddedPendingSettlementEvent{
			EventId:               "fee-" + fee.id,
			EstateId:              "est1",
			MerchantId:            fee.merchant,
			TransactionId:         fee.txn,
			FeeId:                 fee.id,
			CalculatedValue:       decimal.RequireFromString(fee.value),
			FeeCalculatedDateTime: time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
			SettlementDueDate:     dueDate,
		}); err != nil {
			t.Fatalf("apply fee %s: %v", fee.id, err)
		}
	}

	window := models.AggregateQuery{
		EstateId:  "est1",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	days, err := models.SettlementsByDay(ctx, window)
	if err != nil {
		t.Fatalf("SettlementsByDay: %v", err)
	}
	var settled *models.DayAggregateRow
	for i := range days {
		if days[i].TotalCount > 0 {
			settled = &days[i]
		}
	}
	if settled == nil {
		t.Fatal("no settlement day row")
	}
	if settled.TotalCount != 3 {
		t.Errorf("fee count = %d, want 3", settled.TotalCount)
	}
	if !settled.TotalValue.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("fee value = %s, want 5.00", settled.TotalValue)
	}
	if !settled.Date.Equal(dueDate) {
		t.Errorf("bucketed on %s, want settlement date %s", settled.Date, dueDate)
	}

	merchants, err := models.SettlementsByMerchant(ctx, window)
	if err != nil {
		t.Fatalf("SettlementsByMerchant: %v", err)
	}
	if len(merchants) != 2 {
		t.Fatalf("expected 2 merchant rows, got %d", len(merchants))
	}
	if merchants[0].MerchantId != "m1" || merchants[0].TotalCount != 2 {
		t.Errorf("top merchant = %s/%d, want m1/2", merchants[0].MerchantId, merchants[0].TotalCount)
	}
	if !merchants[1].TotalValue.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("m2 value = %s, want 3.00", merchants[1].TotalValue)
	}
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("estate-reporting-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=estate_reporting_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
