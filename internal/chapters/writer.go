package chapters

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"time"

	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/util"
)

// Chapter is a single marker in a chapter file.
type Chapter struct {
	Index int // 1-based
	Start time.Duration
}

// Name returns the chapter title, "Chapter 0001" for index 1.
func (c Chapter) Name() string {
	return fmt.Sprintf("Chapter %04d", c.Index)
}

// String returns the two-line record for the chapter, newline terminated.
func (c Chapter) String() string {
	return fmt.Sprintf("CHAPTER%04d=%s\nCHAPTER%04dNAME=%s\n",
		c.Index, FormatDuration(c.Start), c.Index, c.Name())
}

// Writer streams chapter records, numbering them from 1 in the order received.
type Writer struct {
	w     *bufio.Writer
	count int
}

// NewWriter creates a Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Add appends a chapter starting at the given number of seconds.
func (w *Writer) Add(seconds float64) error {
	start, err := ToDuration(seconds)
	if err != nil {
		return err
	}

	ch := Chapter{Index: w.count + 1, Start: start}
	if _, err := w.w.WriteString(ch.String()); err != nil {
		return errors.NewIOError("failed to write chapter", err)
	}
	w.count++
	return nil
}

// Count returns the number of chapters written so far.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return errors.NewIOError("failed to write chapters", err)
	}
	return nil
}

// Write consumes seq and writes one chapter per timestamp to w. It stops at
// the first error yielded by seq and returns it. The returned count is the
// number of chapters written.
func Write(w io.Writer, seq iter.Seq2[float64, error]) (int, error) {
	cw := NewWriter(w)
	for seconds, err := range seq {
		if err != nil {
			return cw.Count(), err
		}
		if err := cw.Add(seconds); err != nil {
			return cw.Count(), err
		}
	}
	return cw.Count(), cw.Flush()
}

// WriteFile writes the chapters from seq to path. The file is assembled
// under a temporary name in the same directory and only renamed into place
// once seq is exhausted without error, so a failed run never leaves a
// partial chapter file behind.
func WriteFile(path string, seq iter.Seq2[float64, error]) (int, error) {
	tmp, err := util.CreateTempFile(filepath.Dir(path), "."+util.GetFileStem(path), "tmp")
	if err != nil {
		return 0, errors.NewIOError(fmt.Sprintf("cannot create chapters file %s", path), err)
	}
	defer func() { _ = tmp.Cleanup() }()

	n, err := Write(tmp.File(), seq)
	if err != nil {
		return 0, err
	}

	if err := tmp.Commit(path, 0644); err != nil {
		return 0, errors.NewIOError(fmt.Sprintf("cannot create chapters file %s", path), err)
	}
	return n, nil
}

// Timestamps adapts a slice to the sequence form accepted by Write.
func Timestamps(seconds ...float64) iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		for _, s := range seconds {
			if !yield(s, nil) {
				return
			}
		}
	}
}
