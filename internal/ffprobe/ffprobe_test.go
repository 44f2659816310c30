package ffprobe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/five82/scenechapters/internal/errors"
)

// loadTestData loads a JSON fixture from the testdata directory.
func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to load test data %s: %v", filename, err)
	}
	return data
}

func TestParseFFprobeOutput_Valid1080p(t *testing.T) {
	data := loadTestData(t, "video_1080p.json")

	probe, err := parseFFprobeOutput(data)
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	if probe.Format.Duration != "120.500000" {
		t.Errorf("Duration = %q, want %q", probe.Format.Duration, "120.500000")
	}
	if len(probe.Streams) != 2 {
		t.Fatalf("len(Streams) = %d, want 2", len(probe.Streams))
	}
	if probe.Streams[1].CodecType != "audio" {
		t.Errorf("Streams[1].CodecType = %q, want audio", probe.Streams[1].CodecType)
	}
}

func TestParseFFprobeOutput_MalformedJSON(t *testing.T) {
	data := loadTestData(t, "malformed.json")

	_, err := parseFFprobeOutput(data)
	if !errors.IsKind(err, errors.KindParse) {
		t.Errorf("parseFFprobeOutput() error = %v, want parse error", err)
	}
}

func TestExtractMediaInfo(t *testing.T) {
	tests := []struct {
		name      string
		fixture   string
		duration  float64
		width     int64
		height    int64
		codec     string
		frameRate string
		frames    uint64
		hasVideo  bool
	}{
		{
			name:      "1080p h264",
			fixture:   "video_1080p.json",
			duration:  120.5,
			width:     1920,
			height:    1080,
			codec:     "h264",
			frameRate: "24000/1001",
			frames:    2889,
			hasVideo:  true,
		},
		{
			name:      "missing duration and frame count",
			fixture:   "mkv_no_nb_frames.json",
			width:     3840,
			height:    2160,
			codec:     "hevc",
			frameRate: "25/1",
			hasVideo:  true,
		},
		{
			name:     "no video stream",
			fixture:  "audio_only.json",
			duration: 245.12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe, err := parseFFprobeOutput(loadTestData(t, tt.fixture))
			if err != nil {
				t.Fatalf("parseFFprobeOutput() error = %v", err)
			}

			info := extractMediaInfo(probe)
			if info.Duration != tt.duration {
				t.Errorf("Duration = %v, want %v", info.Duration, tt.duration)
			}
			if info.Width != tt.width || info.Height != tt.height {
				t.Errorf("dimensions = %dx%d, want %dx%d", info.Width, info.Height, tt.width, tt.height)
			}
			if info.CodecName != tt.codec {
				t.Errorf("CodecName = %q, want %q", info.CodecName, tt.codec)
			}
			if info.FrameRate != tt.frameRate {
				t.Errorf("FrameRate = %q, want %q", info.FrameRate, tt.frameRate)
			}
			if info.TotalFrames != tt.frames {
				t.Errorf("TotalFrames = %d, want %d", info.TotalFrames, tt.frames)
			}
			if info.HasVideo() != tt.hasVideo {
				t.Errorf("HasVideo() = %v, want %v", info.HasVideo(), tt.hasVideo)
			}
		})
	}
}

func TestPickFrameRate(t *testing.T) {
	tests := []struct {
		r, avg string
		want   string
	}{
		{"24000/1001", "24000/1001", "24000/1001"},
		{"0/0", "25/1", "25/1"},
		{"", "30/1", "30/1"},
		{"0/0", "0/0", ""},
	}

	for _, tt := range tests {
		if got := pickFrameRate(tt.r, tt.avg); got != tt.want {
			t.Errorf("pickFrameRate(%q, %q) = %q, want %q", tt.r, tt.avg, got, tt.want)
		}
	}
}

func TestGetMediaInfo(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	fixture, err := filepath.Abs(filepath.Join("testdata", "video_1080p.json"))
	if err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat '"+fixture+"'\n"), 0755); err != nil {
		t.Fatal(err)
	}

	info, err := GetMediaInfo(context.Background(), script, "movie.mkv")
	if err != nil {
		t.Fatalf("GetMediaInfo() error = %v", err)
	}
	if info.Duration != 120.5 || info.FrameRate != "24000/1001" {
		t.Errorf("GetMediaInfo() = %+v", info)
	}
}

func TestGetMediaInfoCommandFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	script := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'movie.mkv: Invalid data' >&2\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := GetMediaInfo(context.Background(), script, "movie.mkv")
	if !errors.IsKind(err, errors.KindCommand) {
		t.Errorf("GetMediaInfo() error = %v, want command error", err)
	}
}
