package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is keyed by a settlement id derived purely from the settlement
// date, so independent events about the same date's settlement converge on
// one row without a lookup round-trip.
type Settlement struct {
	EstateId     string `gorm:"primaryKey;size:36;index:idx_stl_estate_date,priority:1" json:"estate_id"`
	SettlementId string `gorm:"primaryKey;size:36" json:"settlement_id"`

	SettlementDate time.Time `gorm:"not null;index:idx_stl_estate_date,priority:2" json:"settlement_date"`
	IsCompleted    bool      `gorm:"not null;default:0" json:"is_completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Settlement) TableName() string {
	return "settlements"
}

// MerchantSettlementFee is one fee row inside a settlement. The is_settled
// flag transitions false -> true exactly once; no event reverses it.
type MerchantSettlementFee struct {
	EstateId      string `gorm:"primaryKey;size:36;index:idx_msf_estate_merchant,priority:1" json:"estate_id"`
	SettlementId  string `gorm:"primaryKey;size:36" json:"settlement_id"`
	TransactionId string `gorm:"primaryKey;size:36" json:"transaction_id"`
	FeeId         string `gorm:"primaryKey;size:36" json:"fee_id"`

	MerchantId            string          `gorm:"size:36;not null;index:idx_msf_estate_merchant,priority:2" json:"merchant_id"`
	CalculatedValue       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"calculated_value"`
	FeeCalculatedDateTime time.Time       `json:"fee_calculated_date_time"`
	IsSettled             bool            `gorm:"not null;default:0" json:"is_settled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MerchantSettlementFee) TableName() string {
	return "merchant_settlement_fees"
}
