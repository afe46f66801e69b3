package ambient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Timestamp is an instant the API transmits as epoch milliseconds. It is used
// only for the dateutc field.
type Timestamp struct {
	time.Time
}

// TimestampFromMillis converts epoch milliseconds to a UTC Timestamp.
func TimestampFromMillis(ms int64) Timestamp {
	return Timestamp{Time: time.UnixMilli(ms).UTC()}
}

// Millis returns epoch milliseconds, or 0 for the zero Timestamp. A dateutc of
// -62135596800000 (0001-01-01T00:00:00Z) is indistinguishable from an absent
// one and also reports 0.
func (t Timestamp) Millis() int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// UnmarshalJSON accepts an integral JSON number of milliseconds that fits in
// an int64. null leaves the zero value. Strings, including quoted numbers,
// are rejected.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var n json.Number
	if len(data) == 0 || data[0] == '"' || json.Unmarshal(data, &n) != nil {
		return fmt.Errorf("dateutc: expected epoch milliseconds, got %s", data)
	}

	ms, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("dateutc: epoch milliseconds %s out of range", data)
		}
		// tolerate 1588997100000.0 and 1.5889971e12
		if ms, err = wholeMillis(n); err != nil {
			return fmt.Errorf("dateutc: invalid epoch milliseconds %s: %w", data, err)
		}
	}

	*t = TimestampFromMillis(ms)
	return nil
}

// wholeMillis converts a non-integer literal that still denotes a whole
// number within int64 range.
func wholeMillis(n json.Number) (int64, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, errors.New("not a whole number")
	}
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, strconv.ErrRange
	}
	return int64(f), nil
}

// MarshalJSON writes epoch milliseconds so a decoded record encodes back to
// the wire form.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}
