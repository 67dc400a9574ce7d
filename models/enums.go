package models

// SortField selects the measure aggregate queries order by.
type SortField string

const (
	SortFieldCount SortField = "COUNT"
	SortFieldValue SortField = "VALUE"
)

// SortDirection selects ascending or descending order.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// BalanceEntryType classifies a merchant balance history entry.
type BalanceEntryType string

const (
	BalanceEntryCredit BalanceEntryType = "C"
	BalanceEntryDebit  BalanceEntryType = "D"
)
