// Package util holds small path, formatting and filesystem helpers shared by
// the pipelines.
package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const unknownClock = "--:--:--"

// FormatElapsed renders d as HH:MM:SS, dropping fractions of a second.
// Hours are not wrapped.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		return unknownClock
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// FormatSeconds is FormatElapsed for a probe duration in seconds.
func FormatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 ||
		seconds > float64(math.MaxInt64/int64(time.Second)) {
		return unknownClock
	}
	return FormatElapsed(time.Duration(seconds * float64(time.Second)))
}

// ParseFFmpegTime converts the time= field of an ffmpeg status line
// (HH:MM:SS.ss) to seconds. ffmpeg prints N/A or a negative time before the
// first frame is decoded; both report false.
func ParseFFmpegTime(s string) (float64, bool) {
	h, rest, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	m, sec, ok := strings.Cut(rest, ":")
	if !ok {
		return 0, false
	}

	var total float64
	for _, part := range []struct {
		text  string
		scale float64
	}{{h, 3600}, {m, 60}, {sec, 1}} {
		v, err := strconv.ParseFloat(part.text, 64)
		if err != nil || math.Signbit(v) {
			return 0, false
		}
		total += v * part.scale
	}
	return total, true
}
