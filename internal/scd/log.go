package scd

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/five82/scenechapters/internal/errors"
)

// ptsMarker identifies lines carrying a presentation timestamp, e.g.
//
//	frame:12   pts:441     pts_time:0.5
const ptsMarker = "pts_time"

// ParseSceneLog yields the pts_time value of every matching line in r, in
// order. Other lines are skipped. An unparsable value stops iteration with
// a parse error naming the line.
func ParseSceneLog(r io.Reader) iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		scanner := bufio.NewScanner(r)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()

			idx := strings.Index(line, ptsMarker)
			if idx < 0 {
				continue
			}

			value := extractValue(line[idx+len(ptsMarker):])
			seconds, err := strconv.ParseFloat(value, 64)
			if err != nil {
				yield(0, errors.NewParseError(fmt.Sprintf("line %d: invalid pts_time %q", lineNum, value), err))
				return
			}

			if !yield(seconds, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(0, errors.NewIOError("failed to read scene log", err))
		}
	}
}

// extractValue returns the token after the marker's separator.
func extractValue(rest string) string {
	rest = strings.TrimLeft(rest, ":= \t")
	if end := strings.IndexAny(rest, " \t"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// ParseSceneLogFile is ParseSceneLog over the file at path. The file is
// opened when iteration starts and closed when it ends.
func ParseSceneLogFile(path string) iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(0, errors.NewIOError(fmt.Sprintf("cannot open scene log %s", path), err))
			return
		}
		defer func() { _ = f.Close() }()

		for ts, err := range ParseSceneLog(f) {
			if !yield(ts, err) || err != nil {
				return
			}
		}
	}
}
