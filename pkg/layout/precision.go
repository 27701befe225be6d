package layout

import (
	"strings"
	"time"

	"github.com/matzehuels/yeargrid/pkg/errors"
)

// Precision controls how event timestamps are rounded before placement.
type Precision string

const (
	// PrecisionDay rounds starts to the start of their day and ends to the end
	// of theirs.
	PrecisionDay Precision = "day"

	// PrecisionMinute keeps sub-day timestamps unchanged.
	PrecisionMinute Precision = "minute"
)

// DefaultPrecision is used when no precision is configured.
const DefaultPrecision = PrecisionDay

// ParsePrecision accepts "day", "days", "minute" or "minutes" in any case.
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "days":
		return PrecisionDay, nil
	case "minute", "minutes":
		return PrecisionMinute, nil
	}
	return "", errors.Configuration("invalid precision %q (must be day or minute)", s)
}

// Validate reports whether p is a known precision.
func (p Precision) Validate() error {
	if p != PrecisionDay && p != PrecisionMinute {
		return errors.Configuration("invalid precision %q (must be day or minute)", string(p))
	}
	return nil
}

// round applies p to an inclusive [start, end] range.
func (p Precision) round(start, end time.Time) (time.Time, time.Time) {
	if p != PrecisionDay {
		return start, end
	}
	return startOfDay(start), startOfDay(end).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
