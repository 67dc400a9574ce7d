package projection

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"
	"github.com/merchantdata/estate_reporting_backend/utils"
)

// Settlement identifier derivation. A settlement row is uniquely identified
// by its calendar date within an estate, and the identifier is a pure
// function of that date: independent events about the same date's settlement
// converge on one row without any lookup.
//
// Layout: the date's tick count (100ns intervals since 0001-01-01T00:00:00
// UTC) written big-endian into the first settlementTickBytes of a
// SettlementIDByteWidth-byte identifier; remaining bytes are zero. The
// constants are part of the cross-implementation contract: identical dates
// must yield identical identifiers everywhere.
const (
	SettlementIDByteWidth = 16
	settlementTickBytes   = 8

	ticksPerSecond = int64(10_000_000)
	// Ticks between 0001-01-01 and the Unix epoch.
	unixEpochTicks = int64(621_355_968_000_000_000)
)

// SettlementIDForDate derives the settlement identifier for a calendar date.
// Deterministic and clock-independent; the time-of-day portion of the input
// is ignored.
func SettlementIDForDate(date time.Time) (uuid.UUID, error) {
	if date.Year() < 1 || date.Year() > 9999 {
		return uuid.Nil, &utils.InvalidDateError{
			Value:  date.Format(utils.CalendarDateLayout),
			Reason: "year outside representable range",
		}
	}

	day := utils.TruncateToDay(date)
	ticks := day.Unix()*ticksPerSecond + unixEpochTicks

	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:settlementTickBytes], uint64(ticks))
	return id, nil
}
