package chapters

import (
	"bytes"
	"iter"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/five82/scenechapters/internal/errors"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{0.5, "00:00:00.500"},
		{1, "00:00:01.000"},
		{2.5, "00:00:02.500"},
		{59.9994, "00:00:59.999"},
		{59.9996, "00:01:00.000"},
		{3599.9999, "01:00:00.000"},
		{3661.4005, "01:01:01.401"},
		{86399.999, "23:59:59.999"},
		{86400, "24:00:00.000"},
		{90061.25, "25:01:01.250"},
		{360000, "100:00:00.000"},
		{1001.0 / 24000.0 * 24, "00:00:01.001"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatTimestamp(tt.seconds)
			if err != nil {
				t.Fatalf("FormatTimestamp(%v) error = %v", tt.seconds, err)
			}
			if got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatTimestampPattern(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{2,}:\d{2}:\d{2}\.\d{3}$`)
	for _, s := range []float64{0, 0.0004, 0.001, 1.23456, 59.5, 600, 7199.9995, 123456.789} {
		got, err := FormatTimestamp(s)
		if err != nil {
			t.Fatalf("FormatTimestamp(%v) error = %v", s, err)
		}
		if !pattern.MatchString(got) {
			t.Errorf("FormatTimestamp(%v) = %q does not match %s", s, got, pattern)
		}
	}
}

func TestFormatTimestampRejectsInvalid(t *testing.T) {
	for _, s := range []float64{-1, -0.001, math.NaN(), math.Inf(1), math.Inf(-1), 1e300} {
		if _, err := FormatTimestamp(s); !errors.IsKind(err, errors.KindParse) {
			t.Errorf("FormatTimestamp(%v) error = %v, want parse error", s, err)
		}
	}
}

func TestToDuration(t *testing.T) {
	// 1.0025 is stored just below the midpoint, 1.0015 just above it
	tests := []struct {
		seconds float64
		want    time.Duration
	}{
		{1.0025, time.Second + 2*time.Millisecond},
		{1.0015, time.Second + 2*time.Millisecond},
		{0, 0},
		{12.3456, 12*time.Second + 346*time.Millisecond},
	}

	for _, tt := range tests {
		d, err := ToDuration(tt.seconds)
		if err != nil {
			t.Fatalf("ToDuration(%v) error = %v", tt.seconds, err)
		}
		if d != tt.want {
			t.Errorf("ToDuration(%v) = %v, want %v", tt.seconds, d, tt.want)
		}
	}
}

func TestChapterString(t *testing.T) {
	ch := Chapter{Index: 12, Start: 90*time.Second + 250*time.Millisecond}
	want := "CHAPTER0012=00:01:30.250\nCHAPTER0012NAME=Chapter 0012\n"
	if got := ch.String(); got != want {
		t.Errorf("Chapter.String() = %q, want %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, Timestamps(1.0, 2.5))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Write() count = %d, want 2", n)
	}

	want := "CHAPTER0001=00:00:01.000\n" +
		"CHAPTER0001NAME=Chapter 0001\n" +
		"CHAPTER0002=00:00:02.500\n" +
		"CHAPTER0002NAME=Chapter 0002\n"
	if got := buf.String(); got != want {
		t.Errorf("Write() output =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteKeepsOrderAndDuplicates(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Write(&buf, Timestamps(5, 1, 1)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"CHAPTER0001=00:00:05.000",
		"CHAPTER0001NAME=Chapter 0001",
		"CHAPTER0002=00:00:01.000",
		"CHAPTER0002NAME=Chapter 0002",
		"CHAPTER0003=00:00:01.000",
		"CHAPTER0003NAME=Chapter 0003",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, Timestamps())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("Write() on empty sequence wrote %d chapters, %d bytes", n, buf.Len())
	}
}

func TestWriteIndexPadding(t *testing.T) {
	seconds := make([]float64, 10000)
	var buf bytes.Buffer
	if _, err := Write(&buf, Timestamps(seconds...)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"CHAPTER0001=", "CHAPTER0999NAME=Chapter 0999", "CHAPTER9999=", "CHAPTER10000NAME=Chapter 10000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func failingSeq(good int) iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		for i := range good {
			if !yield(float64(i), nil) {
				return
			}
		}
		yield(0, errors.NewParseError("bad line", nil))
	}
}

func TestWriteStopsOnSequenceError(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, failingSeq(2))
	if !errors.IsKind(err, errors.KindParse) {
		t.Fatalf("Write() error = %v, want parse error", err)
	}
	if n != 2 {
		t.Errorf("Write() count = %d, want 2", n)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie_chapters.txt")

	n, err := WriteFile(path, Timestamps(0, 1.0))
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if n != 2 {
		t.Errorf("WriteFile() count = %d, want 2", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "CHAPTER0001=00:00:00.000\n") {
		t.Errorf("unexpected content: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the chapters file in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie_chapters.txt")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFile(path, Timestamps(3)); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "CHAPTER0001=00:00:03.000\nCHAPTER0001NAME=Chapter 0001\n" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestWriteFileLeavesNothingOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenes_chapters.txt")

	if _, err := WriteFile(path, failingSeq(3)); !errors.IsKind(err, errors.KindParse) {
		t.Fatalf("WriteFile() error = %v, want parse error", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory after failed write, found %v", entries)
	}
}

func TestWriteFileKeepsExistingOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes_chapters.txt")
	if err := os.WriteFile(path, []byte("previous run"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFile(path, failingSeq(1)); err == nil {
		t.Fatal("expected error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "previous run" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "movie_chapters.txt")

	_, err := WriteFile(path, Timestamps(1))
	if !errors.IsKind(err, errors.KindIO) {
		t.Errorf("WriteFile() error = %v, want I/O error", err)
	}
}
