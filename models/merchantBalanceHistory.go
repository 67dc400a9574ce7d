package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MerchantBalanceHistory is a strictly append-only audit ledger. The unique
// event_id is the sole idempotency guard: re-delivery of the same balance
// event hits the unique index and is absorbed as a no-op.
type MerchantBalanceHistory struct {
	EventId string `gorm:"primaryKey;size:36" json:"event_id"`

	EstateId      string           `gorm:"size:36;not null;index:idx_mbh_estate_merchant,priority:1" json:"estate_id"`
	MerchantId    string           `gorm:"size:36;not null;index:idx_mbh_estate_merchant,priority:2" json:"merchant_id"`
	AvailableBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"available_balance"`
	Balance       decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"balance"`
	ChangeAmount  decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"change_amount"`
	EntryType     BalanceEntryType `gorm:"size:1" json:"entry_type"`
	Reference     string           `gorm:"size:255" json:"reference"`
	EntryDateTime time.Time        `json:"entry_date_time"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MerchantBalanceHistory) TableName() string {
	return "merchant_balance_histories"
}
