package mononomics

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// TimestampFormat is the layout of persisted timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// EnvTestingNow freezes the clock when set to a TimestampFormat value. It
// exists so documentation examples produce stable output.
const EnvTestingNow = "MONO_TESTING_NOW"

// Timestamp is a second precision local time. The zero Timestamp stands for
// records written before timestamps existed and prints as "N/A".
type Timestamp struct {
	t time.Time
}

// NewTimestamp truncates t to the second.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{t: t.Truncate(time.Second)}
}

// ParseTimestamp parses "YYYY-MM-DD HH:MM:SS" in the local time zone.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimestampFormat, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q want format %q: %w", s, TimestampFormat, err)
	}
	return Timestamp{t: t}, nil
}

// DateFormat is the layout accepted by ParseTime for whole days.
const DateFormat = "2006-01-02"

// ParseTime parses a range bound, either a full timestamp or a day, in
// which case it stands for midnight at the start of that day. An empty
// string is the zero time, an open bound.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(DateFormat, s, time.Local); err == nil {
		return t, nil
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q want %q or %q", s, DateFormat, TimestampFormat)
	}
	return ts.t, nil
}

// Now returns the current time, or the frozen time from EnvTestingNow.
func Now() time.Time {
	if s := os.Getenv(EnvTestingNow); s != "" {
		if ts, err := ParseTimestamp(s); err == nil {
			return ts.t
		}
	}
	return time.Now()
}

func (s Timestamp) Time() time.Time         { return s.t }
func (s Timestamp) IsZero() bool            { return s.t.IsZero() }
func (s Timestamp) Equal(o Timestamp) bool  { return s.t.Equal(o.t) }
func (s Timestamp) Before(o Timestamp) bool { return s.t.Before(o.t) }

// String formats the timestamp, "N/A" when unknown.
func (s Timestamp) String() string {
	if s.t.IsZero() {
		return "N/A"
	}
	return s.t.Format(TimestampFormat)
}

func (s Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a formatted timestamp, or null, "" and "N/A" for
// an unknown one.
func (s *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Timestamp{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if str == "" || str == "N/A" {
		*s = Timestamp{}
		return nil
	}
	ts, err := ParseTimestamp(str)
	if err != nil {
		return err
	}
	*s = ts
	return nil
}
