package models

import (
	"log"

	"github.com/merchantdata/estate_reporting_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Transaction{},
		&Settlement{}, &MerchantSettlementFee{},
		&MerchantBalanceHistory{},
		&FileImportLog{}, &FileImportLogFile{}, &FileLine{},
		&ProjectionInboxRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
