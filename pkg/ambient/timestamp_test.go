package ambient

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectMS    int64
		expectZero  bool
		expectError bool
	}{
		{name: "Epoch millis", input: `1588997100000`, expectMS: 1588997100000},
		{name: "Float millis", input: `1588997100000.0`, expectMS: 1588997100000},
		{name: "Epoch zero", input: `0`, expectMS: 0},
		{name: "Null", input: `null`, expectZero: true},
		{name: "Exponent millis", input: `1.5889971e12`, expectMS: 1588997100000},
		{name: "Negative millis", input: `-1000`, expectMS: -1000},
		{name: "Boolean", input: `true`, expectError: true},
		{name: "Date string", input: `"2020-05-09T04:05:00.000Z"`, expectError: true},
		{name: "Quoted millis", input: `"1588997100000"`, expectError: true},
		{name: "Fractional millis", input: `1588997100000.5`, expectError: true},
		{name: "Integer overflow", input: `99999999999999999999`, expectError: true},
		{name: "Integer underflow", input: `-99999999999999999999`, expectError: true},
		{name: "Huge exponent", input: `1e30`, expectError: true},
		{name: "Huge negative exponent", input: `-1e30`, expectError: true},
		{name: "Exponent just past int64", input: `9.223372036854775808e18`, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tc.input), &ts)

			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tc.expectZero {
				if !ts.IsZero() {
					t.Errorf("Expected zero timestamp, got %v", ts.Time)
				}
				return
			}
			if ts.UnixMilli() != tc.expectMS {
				t.Errorf("Expected %d ms, got %d", tc.expectMS, ts.UnixMilli())
			}
			if ts.Location() != time.UTC {
				t.Errorf("Expected UTC location, got %v", ts.Location())
			}
		})
	}
}

func TestTimestamp_ConvertsToInstant(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`1588997100000`), &ts); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := time.Date(2020, time.May, 9, 4, 5, 0, 0, time.UTC)
	if !ts.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, ts.Time)
	}
}

func TestTimestamp_RoundTrip(t *testing.T) {
	for _, ms := range []int64{1588997100000, 1, 1700000000123, -1000} {
		data, err := json.Marshal(TimestampFromMillis(ms))
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var decoded Timestamp
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if decoded.Millis() != ms {
			t.Errorf("Expected %d ms after round trip, got %d", ms, decoded.Millis())
		}
	}
}

func TestTimestamp_ZeroValue(t *testing.T) {
	var ts Timestamp

	if ts.Millis() != 0 {
		t.Errorf("Expected 0 ms for zero timestamp, got %d", ts.Millis())
	}

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("Expected null, got %s", data)
	}
}

func TestTimestamp_ZeroInstantReportsZeroMillis(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`-62135596800000`), &ts); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !ts.IsZero() {
		t.Errorf("Expected 0001-01-01T00:00:00Z to be the zero time, got %v", ts.Time)
	}
	if ts.Millis() != 0 {
		t.Errorf("Expected 0 ms, got %d", ts.Millis())
	}
}
