package projection

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/merchantdata/estate_reporting_backend/models"
	"github.com/merchantdata/estate_reporting_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// WritePolicy states how the projector treats a duplicate-key conflict on a
// table. AppendOnlyIdempotent absorbs the conflict as a no-op (re-delivery of
// the same logical event is expected); MustExist means the row is the target
// of an update and a conflict is a real store failure.
type WritePolicy int

const (
	MustExist WritePolicy = iota
	AppendOnlyIdempotent
)

// TablePolicies is the explicit per-table duplicate-key policy consulted by
// the projector. Constructed once and passed in, never global state.
type TablePolicies struct {
	Transactions             WritePolicy
	Settlements              WritePolicy
	MerchantSettlementFees   WritePolicy
	MerchantBalanceHistories WritePolicy
	FileImportLogs           WritePolicy
	FileImportLogFiles       WritePolicy
	FileLines                WritePolicy
}

// DefaultTablePolicies marks every insert target append-only idempotent.
// These are the designated tables whose natural key can legitimately receive
// the same logical event twice.
func DefaultTablePolicies() TablePolicies {
	return TablePolicies{
		Transactions:             AppendOnlyIdempotent,
		Settlements:              AppendOnlyIdempotent,
		MerchantSettlementFees:   AppendOnlyIdempotent,
		MerchantBalanceHistories: AppendOnlyIdempotent,
		FileImportLogs:           AppendOnlyIdempotent,
		FileImportLogFiles:       AppendOnlyIdempotent,
		FileLines:                AppendOnlyIdempotent,
	}
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Projector applies decoded events to the relational model. Side effects are
// confined to the store; the projector raises no events of its own.
type Projector struct {
	DB       *gorm.DB
	Logger   *logrus.Logger
	Policies TablePolicies
}

func NewProjector(db *gorm.DB, logger *logrus.Logger) *Projector {
	return &Projector{
		DB:       db,
		Logger:   logger,
		Policies: DefaultTablePolicies(),
	}
}

// Apply projects one event inside a single store transaction, so cancellation
// before commit leaves no partial row state.
func (p *Projector) Apply(ctx context.Context, evt DomainEvent) error {
	return p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch e := evt.(type) {
		case *TransactionAuthorisedEvent:
			return p.applyTransactionAuthorised(tx, e)
		case *TransactionDeclinedEvent:
			return p.applyTransactionDeclined(tx, e)
		case *TransactionCompletedEvent:
			return p.applyTransactionCompleted(tx, e)
		case *SettlementCreatedForDateEvent:
			return p.applySettlementCreatedForDate(tx, e)
		case *MerchantFeeAddedPendingSettlementEvent:
			return p.applyMerchantFee(tx, e.EstateId, e.MerchantId, e.TransactionId, e.FeeId,
				e.SettlementDueDate, e.CalculatedValue, e.FeeCalculatedDateTime)
		case *MerchantFeeAddedToTransactionEvent:
			return p.applyMerchantFee(tx, e.EstateId, e.MerchantId, e.TransactionId, e.FeeId,
				e.SettlementDueDate, e.CalculatedValue, e.FeeCalculatedDateTime)
		case *MerchantFeeSettledEvent:
			return p.applyMerchantFeeSettled(tx, e)
		case *SettlementCompletedEvent:
			return p.applySettlementCompleted(tx, e)
		case *MerchantBalanceChangedEvent:
			return p.applyMerchantBalanceChanged(tx, e)
		case *ImportLogCreatedEvent:
			return p.applyImportLogCreated(tx, e)
		case *FileCreatedEvent:
			return p.applyFileCreated(tx, e)
		case *FileLineAddedEvent:
			return p.applyFileLineAdded(tx, e)
		default:
			return fmt.Errorf("no projection handler for %s", evt.EventType())
		}
	})
}

// insert applies the table's duplicate-key policy: a 1062 on an append-only
// table is the expected re-delivery case and succeeds silently.
func (p *Projector) insert(tx *gorm.DB, policy WritePolicy, table string, row interface{}) error {
	if err := tx.Create(row).Error; err != nil {
		if policy == AppendOnlyIdempotent && isDuplicateKeyErr(err) {
			if p.Logger != nil {
				p.Logger.WithFields(logrus.Fields{
					"module": "projection",
					"table":  table,
				}).Debug("duplicate key absorbed")
			}
			return nil
		}
		return &StoreError{Op: "insert " + table, Err: err}
	}
	return nil
}

func (p *Projector) applyTransactionAuthorised(tx *gorm.DB, e *TransactionAuthorisedEvent) error {
	row := models.Transaction{
		EstateId:            e.EstateId,
		MerchantId:          e.MerchantId,
		TransactionId:       e.TransactionId,
		TransactionDateTime: e.TransactionDateTime,
		TransactionDate:     utils.TruncateToDay(e.TransactionDateTime),
		TransactionType:     e.TransactionType,
		Amount:              e.Amount,
		CurrencyCode:        e.CurrencyCode,
		OperatorIdentifier:  e.OperatorIdentifier,
		IsAuthorised:        true,
		AuthorisationCode:   e.AuthorisationCode,
		ResponseCode:        e.ResponseCode,
		ResponseMessage:     e.ResponseMessage,
	}
	return p.insert(tx, p.Policies.Transactions, "transactions", &row)
}

func (p *Projector) applyTransactionDeclined(tx *gorm.DB, e *TransactionDeclinedEvent) error {
	row := models.Transaction{
		EstateId:            e.EstateId,
		MerchantId:          e.MerchantId,
		TransactionId:       e.TransactionId,
		TransactionDateTime: e.TransactionDateTime,
		TransactionDate:     utils.TruncateToDay(e.TransactionDateTime),
		TransactionType:     e.TransactionType,
		Amount:              e.Amount,
		CurrencyCode:        e.CurrencyCode,
		OperatorIdentifier:  e.OperatorIdentifier,
		IsAuthorised:        false,
		ResponseCode:        e.ResponseCode,
		ResponseMessage:     e.ResponseMessage,
	}
	return p.insert(tx, p.Policies.Transactions, "transactions", &row)
}

func (p *Projector) applyTransactionCompleted(tx *gorm.DB, e *TransactionCompletedEvent) error {
	// Read current persisted state first: an update with unchanged values
	// reports zero affected rows on MySQL, which would be indistinguishable
	// from a missing row.
	var existing models.Transaction
	err := tx.Where("estate_id = ? AND merchant_id = ? AND transaction_id = ?",
		e.EstateId, e.MerchantId, e.TransactionId).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ProjectionOrderingError{
			Table: "transactions",
			Key:   fmt.Sprintf("%s/%s/%s", e.EstateId, e.MerchantId, e.TransactionId),
		}
	}
	if err != nil {
		return &StoreError{Op: "load transaction", Err: err}
	}

	if err := tx.Model(&models.Transaction{}).
		Where("estate_id = ? AND merchant_id = ? AND transaction_id = ?",
			e.EstateId, e.MerchantId, e.TransactionId).
		Update("is_completed", true).Error; err != nil {
		return &StoreError{Op: "complete transaction", Err: err}
	}
	return nil
}

func (p *Projector) applySettlementCreatedForDate(tx *gorm.DB, e *SettlementCreatedForDateEvent) error {
	_, err := p.ensureSettlementRow(tx, e.EstateId, e.SettlementDate)
	return err
}

// ensureSettlementRow derives the settlement id from the date and inserts the
// row if absent. The derived key makes creation order-independent: whichever
// event observes the settlement date first creates the row, the rest land on
// it.
func (p *Projector) ensureSettlementRow(tx *gorm.DB, estateId string, settlementDate time.Time) (string, error) {
	id, err := SettlementIDForDate(settlementDate)
	if err != nil {
		return "", err
	}

	row := models.Settlement{
		EstateId:       estateId,
		SettlementId:   id.String(),
		SettlementDate: utils.TruncateToDay(settlementDate),
	}
	if err := p.insert(tx, p.Policies.Settlements, "settlements", &row); err != nil {
		return "", err
	}
	return id.String(), nil
}

func (p *Projector) applyMerchantFee(tx *gorm.DB, estateId, merchantId, transactionId, feeId string,
	settlementDueDate time.Time, calculatedValue decimal.Decimal, feeCalculatedAt time.Time) error {

	settlementId, err := p.ensureSettlementRow(tx, estateId, settlementDueDate)
	if err != nil {
		return err
	}

	row := models.MerchantSettlementFee{
		EstateId:              estateId,
		SettlementId:          settlementId,
		TransactionId:         transactionId,
		FeeId:                 feeId,
		MerchantId:            merchantId,
		CalculatedValue:       calculatedValue,
		FeeCalculatedDateTime: feeCalculatedAt,
		IsSettled:             false,
	}
	return p.insert(tx, p.Policies.MerchantSettlementFees, "merchant_settlement_fees", &row)
}

func (p *Projector) applyMerchantFeeSettled(tx *gorm.DB, e *MerchantFeeSettledEvent) error {
	var existing models.MerchantSettlementFee
	err := tx.Where("estate_id = ? AND settlement_id = ? AND transaction_id = ? AND fee_id = ?",
		e.EstateId, e.SettlementId, e.TransactionId, e.FeeId).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ProjectionOrderingError{
			Table: "merchant_settlement_fees",
			Key:   fmt.Sprintf("%s/%s/%s/%s", e.EstateId, e.SettlementId, e.TransactionId, e.FeeId),
		}
	}
	if err != nil {
		return &StoreError{Op: "load merchant settlement fee", Err: err}
	}

	// is_settled transitions false -> true exactly once; re-settling is a
	// no-op, never a reversal.
	if existing.IsSettled {
		return nil
	}
	if err := tx.Model(&models.MerchantSettlementFee{}).
		Where("estate_id = ? AND settlement_id = ? AND transaction_id = ? AND fee_id = ?",
			e.EstateId, e.SettlementId, e.TransactionId, e.FeeId).
		Update("is_settled", true).Error; err != nil {
		return &StoreError{Op: "settle merchant settlement fee", Err: err}
	}
	return nil
}

func (p *Projector) applySettlementCompleted(tx *gorm.DB, e *SettlementCompletedEvent) error {
	var existing models.Settlement
	err := tx.Where("estate_id = ? AND settlement_id = ?", e.EstateId, e.SettlementId).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ProjectionOrderingError{
			Table: "settlements",
			Key:   fmt.Sprintf("%s/%s", e.EstateId, e.SettlementId),
		}
	}
	if err != nil {
		return &StoreError{Op: "load settlement", Err: err}
	}

	if err := tx.Model(&models.Settlement{}).
		Where("estate_id = ? AND settlement_id = ?", e.EstateId, e.SettlementId).
		Update("is_completed", true).Error; err != nil {
		return &StoreError{Op: "complete settlement", Err: err}
	}
	return nil
}

func (p *Projector) applyMerchantBalanceChanged(tx *gorm.DB, e *MerchantBalanceChangedEvent) error {
	entryType := models.BalanceEntryCredit
	if e.ChangeAmount.IsNegative() {
		entryType = models.BalanceEntryDebit
	}

	row := models.MerchantBalanceHistory{
		EventId:          e.EventId,
		EstateId:         e.EstateId,
		MerchantId:       e.MerchantId,
		AvailableBalance: e.AvailableBalance,
		Balance:          e.Balance,
		ChangeAmount:     e.ChangeAmount,
		EntryType:        entryType,
		Reference:        e.Reference,
		EntryDateTime:    e.EntryDateTime,
	}
	return p.insert(tx, p.Policies.MerchantBalanceHistories, "merchant_balance_histories", &row)
}

func (p *Projector) applyImportLogCreated(tx *gorm.DB, e *ImportLogCreatedEvent) error {
	row := models.FileImportLog{
		EstateId:          e.EstateId,
		FileImportLogId:   e.FileImportLogId,
		ImportLogDateTime: e.ImportLogDateTime,
	}
	return p.insert(tx, p.Policies.FileImportLogs, "file_import_logs", &row)
}

func (p *Projector) applyFileCreated(tx *gorm.DB, e *FileCreatedEvent) error {
	row := models.FileImportLogFile{
		EstateId:             e.EstateId,
		FileImportLogId:      e.FileImportLogId,
		FileId:               e.FileId,
		MerchantId:           e.MerchantId,
		OriginalFileName:     e.OriginalFileName,
		FilePath:             e.FilePath,
		FileProfileId:        e.FileProfileId,
		FileReceivedDateTime: e.FileReceivedDateTime,
		UserId:               e.UserId,
	}
	return p.insert(tx, p.Policies.FileImportLogFiles, "file_import_log_files", &row)
}

func (p *Projector) applyFileLineAdded(tx *gorm.DB, e *FileLineAddedEvent) error {
	row := models.FileLine{
		EstateId:      e.EstateId,
		FileId:        e.FileId,
		LineNumber:    e.LineNumber,
		LineData:      e.FileLine,
		AddedDateTime: e.AddedDateTime,
	}
	return p.insert(tx, p.Policies.FileLines, "file_lines", &row)
}
