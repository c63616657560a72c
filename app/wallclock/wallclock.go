// Package wallclock derives schedule-relevant day/time values from raw
// epoch seconds. No timezone handling: epoch seconds are interpreted as
// UTC wall time, which is the single seam to replace if locale-correct
// scheduling is ever needed.
package wallclock

import (
	"fmt"
	"time"
)

const SecsPerDay = 86400

// Clock supplies the current Unix timestamp. Production code uses
// SystemClock; tests inject fixed values.
type Clock interface {
	Now() int64
}

type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().Unix() }

// DayOfWeek returns the ISO day for the timestamp, 1=Monday..7=Sunday.
// The epoch (1970-01-01) was a Thursday.
func DayOfWeek(ts int64) int {
	days := ts / SecsPerDay
	return int((days+3)%7) + 1
}

// ClockTime formats the time-of-day portion of the timestamp as
// zero-padded 24-hour "HH:MM".
func ClockTime(ts int64) string {
	secs := ts % SecsPerDay
	return fmt.Sprintf("%02d:%02d", secs/3600, (secs%3600)/60)
}

// DayStart truncates the timestamp to the start of its day.
func DayStart(ts int64) int64 { return ts - ts%SecsPerDay }
