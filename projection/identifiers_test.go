package projection

import (
	"testing"
	"time"
)

func TestSettlementIDForDateDeterministic(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	first, err := SettlementIDForDate(date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := SettlementIDForDate(date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same date produced different identifiers: %s vs %s", first, second)
	}

	// Time of day must not affect the identifier.
	afternoon, err := SettlementIDForDate(time.Date(2024, 3, 15, 14, 33, 52, 123456, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if afternoon != first {
		t.Errorf("time of day changed the identifier: %s vs %s", afternoon, first)
	}
}

func TestSettlementIDForDateDistinctDates(t *testing.T) {
	a, err := SettlementIDForDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := SettlementIDForDate(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Errorf("adjacent dates produced the same identifier: %s", a)
	}
}

func TestSettlementIDForDateKnownValues(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "08dc4482-db92-4000-0000-000000000000"},
		{time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), "08dc454c-05fc-0000-0000-000000000000"},
		{time.Date(2021, 10, 6, 0, 0, 0, 0, time.UTC), "08d9885c-3d83-0000-0000-000000000000"},
		{time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), "089f7ff5-f7b5-8000-0000-000000000000"},
	}
	for _, tc := range cases {
		got, err := SettlementIDForDate(tc.date)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.date.Format("2006-01-02"), err)
		}
		if got.String() != tc.want {
			t.Errorf("%s: got %s, want %s", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestSettlementIDForDateByteLayout(t *testing.T) {
	id, err := SettlementIDForDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := settlementTickBytes; i < SettlementIDByteWidth; i++ {
		if id[i] != 0 {
			t.Errorf("byte %d should be zero, got %#x", i, id[i])
		}
	}
	// First byte of the tick count for any modern date is non-zero.
	if id[0] == 0 {
		t.Error("tick prefix unexpectedly starts with zero byte")
	}
}

func TestSettlementIDForDateOutOfRange(t *testing.T) {
	_, err := SettlementIDForDate(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected an error for year 10000")
	}
}
