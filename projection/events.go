package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event type tags as they appear on the wire.
const (
	TypeTransactionAuthorised             = "TransactionAuthorisedEvent"
	TypeTransactionDeclined               = "TransactionDeclinedEvent"
	TypeTransactionCompleted              = "TransactionCompletedEvent"
	TypeSettlementCreatedForDate          = "SettlementCreatedForDateEvent"
	TypeMerchantFeeAddedPendingSettlement = "MerchantFeeAddedPendingSettlementEvent"
	TypeMerchantFeeAddedToTransaction     = "MerchantFeeAddedToTransactionEvent"
	TypeMerchantFeeSettled                = "MerchantFeeSettledEvent"
	TypeSettlementCompleted               = "SettlementCompletedEvent"
	TypeMerchantBalanceChanged            = "MerchantBalanceChangedEvent"
	TypeImportLogCreated                  = "ImportLogCreatedEvent"
	TypeFileCreated                       = "FileCreatedEvent"
	TypeFileLineAdded                     = "FileLineAddedEvent"
)

// DomainEvent is the closed set of typed events the projector understands.
// The unexported marker keeps the set closed to this package, so the
// projector's type switch covers every variant by construction.
type DomainEvent interface {
	EventType() string
	Estate() string
	isDomainEvent()
}

type TransactionAuthorisedEvent struct {
	EventId             string          `json:"eventId"`
	EstateId            string          `json:"estateId"`
	MerchantId          string          `json:"merchantId"`
	TransactionId       string          `json:"transactionId"`
	TransactionDateTime time.Time       `json:"transactionDateTime"`
	TransactionType     string          `json:"transactionType"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode"`
	OperatorIdentifier  string          `json:"operatorIdentifier"`
	AuthorisationCode   string          `json:"authorisationCode"`
	ResponseCode        string          `json:"responseCode"`
	ResponseMessage     string          `json:"responseMessage"`
}

func (TransactionAuthorisedEvent) EventType() string { return TypeTransactionAuthorised }
func (e TransactionAuthorisedEvent) Estate() string  { return e.EstateId }
func (TransactionAuthorisedEvent) isDomainEvent()    {}

type TransactionDeclinedEvent struct {
	EventId             string          `json:"eventId"`
	EstateId            string          `json:"estateId"`
	MerchantId          string          `json:"merchantId"`
	TransactionId       string          `json:"transactionId"`
	TransactionDateTime time.Time       `json:"transactionDateTime"`
	TransactionType     string          `json:"transactionType"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode"`
	OperatorIdentifier  string          `json:"operatorIdentifier"`
	ResponseCode        string          `json:"responseCode"`
	ResponseMessage     string          `json:"responseMessage"`
}

func (TransactionDeclinedEvent) EventType() string { return TypeTransactionDeclined }
func (e TransactionDeclinedEvent) Estate() string  { return e.EstateId }
func (TransactionDeclinedEvent) isDomainEvent()    {}

type TransactionCompletedEvent struct {
	EventId           string    `json:"eventId"`
	EstateId          string    `json:"estateId"`
	MerchantId        string    `json:"merchantId"`
	TransactionId     string    `json:"transactionId"`
	CompletedDateTime time.Time `json:"completedDateTime"`
}

func (TransactionCompletedEvent) EventType() string { return TypeTransactionCompleted }
func (e TransactionCompletedEvent) Estate() string  { return e.EstateId }
func (TransactionCompletedEvent) isDomainEvent()    {}

type SettlementCreatedForDateEvent struct {
	EventId        string    `json:"eventId"`
	EstateId       string    `json:"estateId"`
	SettlementDate time.Time `json:"settlementDate"`
}

func (SettlementCreatedForDateEvent) EventType() string { return TypeSettlementCreatedForDate }
func (e SettlementCreatedForDateEvent) Estate() string  { return e.EstateId }
func (SettlementCreatedForDateEvent) isDomainEvent()    {}

type MerchantFeeAddedPendingSettlementEvent struct {
	EventId               string          `json:"eventId"`
	EstateId              string          `json:"estateId"`
	MerchantId            string          `json:"merchantId"`
	TransactionId         string          `json:"transactionId"`
	FeeId                 string          `json:"feeId"`
	CalculatedValue       decimal.Decimal `json:"calculatedValue"`
	FeeCalculatedDateTime time.Time       `json:"feeCalculatedDateTime"`
	SettlementDueDate     time.Time       `json:"settlementDueDate"`
}

func (MerchantFeeAddedPendingSettlementEvent) EventType() string {
	return TypeMerchantFeeAddedPendingSettlement
}
func (e MerchantFeeAddedPendingSettlementEvent) Estate() string { return e.EstateId }
func (MerchantFeeAddedPendingSettlementEvent) isDomainEvent()   {}

type MerchantFeeAddedToTransactionEvent struct {
	EventId               string          `json:"eventId"`
	EstateId              string          `json:"estateId"`
	MerchantId            string          `json:"merchantId"`
	TransactionId         string          `json:"transactionId"`
	FeeId                 string          `json:"feeId"`
	CalculatedValue       decimal.Decimal `json:"calculatedValue"`
	FeeCalculatedDateTime time.Time       `json:"feeCalculatedDateTime"`
	SettlementDueDate     time.Time       `json:"settlementDueDate"`
}

func (MerchantFeeAddedToTransactionEvent) EventType() string {
	return TypeMerchantFeeAddedToTransaction
}
func (e MerchantFeeAddedToTransactionEvent) Estate() string { return e.EstateId }
func (MerchantFeeAddedToTransactionEvent) isDomainEvent()   {}

type MerchantFeeSettledEvent struct {
	EventId         string    `json:"eventId"`
	EstateId        string    `json:"estateId"`
	MerchantId      string    `json:"merchantId"`
	SettlementId    string    `json:"settlementId"`
	TransactionId   string    `json:"transactionId"`
	FeeId           string    `json:"feeId"`
	SettledDateTime time.Time `json:"settledDateTime"`
}

func (MerchantFeeSettledEvent) EventType() string { return TypeMerchantFeeSettled }
func (e MerchantFeeSettledEvent) Estate() string  { return e.EstateId }
func (MerchantFeeSettledEvent) isDomainEvent()    {}

type SettlementCompletedEvent struct {
	EventId      string `json:"eventId"`
	EstateId     string `json:"estateId"`
	SettlementId string `json:"settlementId"`
}

func (SettlementCompletedEvent) EventType() string { return TypeSettlementCompleted }
func (e SettlementCompletedEvent) Estate() string  { return e.EstateId }
func (SettlementCompletedEvent) isDomainEvent()    {}

type MerchantBalanceChangedEvent struct {
	EventId          string          `json:"eventId"`
	EstateId         string          `json:"estateId"`
	MerchantId       string          `json:"merchantId"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	Balance          decimal.Decimal `json:"balance"`
	ChangeAmount     decimal.Decimal `json:"changeAmount"`
	Reference        string          `json:"reference"`
	EntryDateTime    time.Time       `json:"entryDateTime"`
}

func (MerchantBalanceChangedEvent) EventType() string { return TypeMerchantBalanceChanged }
func (e MerchantBalanceChangedEvent) Estate() string  { return e.EstateId }
func (MerchantBalanceChangedEvent) isDomainEvent()    {}

type ImportLogCreatedEvent struct {
	EventId           string    `json:"eventId"`
	EstateId          string    `json:"estateId"`
	FileImportLogId   string    `json:"fileImportLogId"`
	ImportLogDateTime time.Time `json:"importLogDateTime"`
}

func (ImportLogCreatedEvent) EventType() string { return TypeImportLogCreated }
func (e ImportLogCreatedEvent) Estate() string  { return e.EstateId }
func (ImportLogCreatedEvent) isDomainEvent()    {}

type FileCreatedEvent struct {
	EventId              string    `json:"eventId"`
	EstateId             string    `json:"estateId"`
	FileImportLogId      string    `json:"fileImportLogId"`
	FileId               string    `json:"fileId"`
	MerchantId           string    `json:"merchantId"`
	OriginalFileName     string    `json:"originalFileName"`
	FilePath             string    `json:"filePath"`
	FileProfileId        string    `json:"fileProfileId"`
	FileReceivedDateTime time.Time `json:"fileReceivedDateTime"`
	UserId               string    `json:"userId"`
}

func (FileCreatedEvent) EventType() string { return TypeFileCreated }
func (e FileCreatedEvent) Estate() string  { return e.EstateId }
func (FileCreatedEvent) isDomainEvent()    {}

type FileLineAddedEvent struct {
	EventId       string    `json:"eventId"`
	EstateId      string    `json:"estateId"`
	FileId        string    `json:"fileId"`
	LineNumber    int       `json:"lineNumber"`
	FileLine      string    `json:"fileLine"`
	AddedDateTime time.Time `json:"addedDateTime"`
}

func (FileLineAddedEvent) EventType() string { return TypeFileLineAdded }
func (e FileLineAddedEvent) Estate() string  { return e.EstateId }
func (FileLineAddedEvent) isDomainEvent()    {}
