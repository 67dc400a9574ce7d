package projection

import (
	"context"
	"errors"
	"testing"
)

// Unknown tags and undecodable payloads never reach the projector, so these
// paths are exercised without a database.

func TestApplyEventUnknownTagSkips(t *testing.T) {
	d := NewDispatcher(nil, nil)
	result, err := d.ApplyEvent(context.Background(), "EstateCreatedEvent", []byte(`{"estateId":"est1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != ResultSkipped {
		t.Errorf("expected skipped, got %s", result)
	}
}

func TestApplyEventMalformedPayload(t *testing.T) {
	d := NewDispatcher(nil, nil)
	result, err := d.ApplyEvent(context.Background(), TypeSettlementCompleted, []byte(`not json`))
	if result != ResultSkipped {
		t.Errorf("expected skipped, got %s", result)
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected a DecodeError, got %v", err)
	}
}
