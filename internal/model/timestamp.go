package model

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Timestamp is an instant persisted as Unix milliseconds.
type Timestamp struct {
	time.Time
}

func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	raw := string(bytes.TrimSpace(b))
	if raw == "null" || raw == "" {
		*t = Timestamp{}
		return nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return fmt.Errorf("model: invalid timestamp %s", raw)
		}
		ms = int64(f)
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

// DateIn returns the calendar day of the timestamp in loc.
func (t Timestamp) DateIn(loc *time.Location) Date {
	return DateOf(t.In(loc))
}
