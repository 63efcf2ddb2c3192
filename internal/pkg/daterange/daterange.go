// internal/pkg/daterange/daterange.go
package daterange

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Layout is the calendar-date wire format used for rental ranges
const Layout = "2006-01-02"

// DateRange is a rental period. Start and End are calendar dates in UTC.
// A zero Start or End marks the range as missing.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New builds a range from two instants, truncated to their UTC dates
func New(start, end time.Time) DateRange {
	return DateRange{Start: toDate(start), End: toDate(end)}
}

// Parse builds a range from two YYYY-MM-DD (or RFC3339) strings. Unlike JSON
// decoding it is strict: both ends must parse and end must not precede start.
func Parse(start, end string) (DateRange, error) {
	s, err := parseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := parseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	r := DateRange{Start: s, End: e}
	if !r.Valid() {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return r, nil
}

// IsZero reports whether either end of the range is missing
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

// Valid reports whether both ends are present and Start <= End
func (r DateRange) Valid() bool {
	return !r.IsZero() && !r.End.Before(r.Start)
}

// Overlaps is the half-open conflict test: a.Start < b.End && a.End > b.Start.
// Ranges that only touch at a boundary do not overlap, and an invalid range
// never overlaps anything.
func (r DateRange) Overlaps(other DateRange) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Days is the billable length of the range in whole days, rounded up, with a
// minimum of one. Missing or reversed ranges bill as one day.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 1
	}
	days := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Key renders the range as "start-end" for line item ids. Missing ends
// render as empty strings.
func (r DateRange) Key() string {
	return formatDate(r.Start) + "-" + formatDate(r.End)
}

// String implements fmt.Stringer
func (r DateRange) String() string {
	return formatDate(r.Start) + " - " + formatDate(r.End)
}

type wireRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MarshalJSON writes both ends as YYYY-MM-DD strings
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRange{Start: formatDate(r.Start), End: formatDate(r.End)})
}

// UnmarshalJSON is lenient: an end that fails to parse is left zero instead
// of failing the whole document, so records from older clients still load.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var w wireRange
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Start, _ = parseDate(w.Start)
	r.End, _ = parseDate(w.End)
	return nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(Layout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return toDate(t), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(Layout)
}

func toDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
