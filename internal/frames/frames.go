// Package frames converts frame-index scene lists, such as those exported by
// dovi_tool from a Dolby Vision RPU, into timestamps.
package frames

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/five82/scenechapters/internal/errors"
)

// Timestamps yields index/fps for each line of r, which must hold one
// non-negative integer frame index per line, optionally signed with '+'. Iteration stops at the first
// invalid line with a parse error.
func Timestamps(r io.Reader, fps float64) iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		if err := validateRate(fps); err != nil {
			yield(0, err)
			return
		}

		scanner := bufio.NewScanner(r)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			text := strings.TrimSpace(scanner.Text())

			index, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, 63)
			if err != nil {
				yield(0, errors.NewParseError(fmt.Sprintf("line %d: invalid frame index %q", lineNum, text), err))
				return
			}

			if !yield(float64(index)/fps, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(0, errors.NewIOError("failed to read frame list", err))
		}
	}
}

// FileTimestamps is Timestamps over the file at path. The file is opened
// when iteration starts and closed when it ends.
func FileTimestamps(path string, fps float64) iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		if err := validateRate(fps); err != nil {
			yield(0, err)
			return
		}

		f, err := os.Open(path)
		if err != nil {
			yield(0, errors.NewIOError(fmt.Sprintf("cannot open frame list %s", path), err))
			return
		}
		defer func() { _ = f.Close() }()

		for ts, err := range Timestamps(f, fps) {
			if !yield(ts, err) || err != nil {
				return
			}
		}
	}
}

func validateRate(fps float64) error {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return errors.NewConfigError(fmt.Sprintf("frame rate must be greater than 0, got %v", fps), nil)
	}
	return nil
}
