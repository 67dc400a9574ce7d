package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transaction fact table.
//
// Grain: (estate_id, merchant_id, transaction_id). Rows are created once from
// the authorisation (or decline) event; completion events update status
// fields only. The composite key shape is part of the on-disk contract: the
// projector's idempotency and the query engine's grouping both depend on it.
type Transaction struct {
	EstateId      string `gorm:"primaryKey;size:36;index:idx_txn_estate_date,priority:1;index:idx_txn_estate_merchant_date,priority:1" json:"estate_id"`
	MerchantId    string `gorm:"primaryKey;size:36;index:idx_txn_estate_merchant_date,priority:2" json:"merchant_id"`
	TransactionId string `gorm:"primaryKey;size:36" json:"transaction_id"`

	TransactionDateTime time.Time       `gorm:"not null" json:"transaction_date_time"`
	TransactionDate     time.Time       `gorm:"not null;index:idx_txn_estate_merchant_date,priority:3;index:idx_txn_estate_date,priority:2" json:"transaction_date"`
	TransactionType     string          `gorm:"size:50" json:"transaction_type"`
	Amount              decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CurrencyCode        string          `gorm:"size:3" json:"currency_code"`
	OperatorIdentifier  string          `gorm:"size:100" json:"operator_identifier"`
	IsAuthorised        bool            `gorm:"not null;default:0" json:"is_authorised"`
	IsCompleted         bool            `gorm:"not null;default:0" json:"is_completed"`
	AuthorisationCode   string          `gorm:"size:10" json:"authorisation_code"`
	ResponseCode        string          `gorm:"size:10" json:"response_code"`
	ResponseMessage     string          `gorm:"size:255" json:"response_message"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Secondary index helpers live on the struct tags above:
// idx_txn_estate_date (estate_id, transaction_date) serves the day/week/month
// aggregates, idx_txn_estate_merchant_date serves the merchant aggregates.
func (Transaction) TableName() string {
	return "transactions"
}
