package projection

import (
	"fmt"

	"github.com/merchantdata/estate_reporting_backend/utils"
)

// DecodeError reports a payload that could not be unmarshalled into its typed
// event. Fatal for that event: the intake layer logs and skips it rather than
// redelivering forever.
type DecodeError struct {
	EventType string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.EventType, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProjectionOrderingError reports a targeted update whose prerequisite row
// does not exist yet: the event arrived before the event that creates the
// row. Surfaced for external redelivery, never retried here.
type ProjectionOrderingError struct {
	Table string
	Key   string
}

func (e *ProjectionOrderingError) Error() string {
	return fmt.Sprintf("projection ordering: no %s row for %s", e.Table, e.Key)
}

func (e *ProjectionOrderingError) Unwrap() error { return utils.ErrorRecordNotFound }

// StoreError wraps a relational store failure other than the designated
// duplicate-key no-op on append-only tables.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
