// Package chapters formats timestamps and writes OGM-style chapter files:
//
//	CHAPTER0001=00:00:01.000
//	CHAPTER0001NAME=Chapter 0001
package chapters

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/five82/scenechapters/internal/errors"
)

// maxSeconds is the largest whole-second value a time.Duration can hold.
const maxSeconds = int64(math.MaxInt64 / int64(time.Second))

// ToDuration rounds seconds to millisecond precision.
//
// Rounding is that of strconv.FormatFloat with three decimals: the exact
// binary value is rounded to the nearest millisecond, so 3661.4005 (stored
// as 3661.40050000000019...) becomes 3661.401s.
func ToDuration(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, errors.NewParseError(fmt.Sprintf("timestamp must be a non-negative number of seconds, got %v", seconds), nil)
	}

	rounded := strconv.FormatFloat(seconds, 'f', 3, 64)
	whole, frac, _ := strings.Cut(rounded, ".")

	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || secs > maxSeconds {
		return 0, errors.NewParseError(fmt.Sprintf("timestamp %v out of range", seconds), err)
	}
	millis, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, errors.NewParseError(fmt.Sprintf("timestamp %v out of range", seconds), err)
	}

	d := time.Duration(secs)*time.Second + time.Duration(millis)*time.Millisecond
	if d < 0 {
		return 0, errors.NewParseError(fmt.Sprintf("timestamp %v out of range", seconds), nil)
	}
	return d, nil
}

// FormatDuration renders d as HH:MM:SS.mmm, truncating below a millisecond.
// Hours are not wrapped at 24 and grow past two digits when needed.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	hours := ms / 3_600_000
	minutes := ms / 60_000 % 60
	secs := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, ms%1000)
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm after rounding to milliseconds.
func FormatTimestamp(seconds float64) (string, error) {
	d, err := ToDuration(seconds)
	if err != nil {
		return "", err
	}
	return FormatDuration(d), nil
}
