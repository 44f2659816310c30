// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/logging"
)

// MediaInfo contains basic media information.
type MediaInfo struct {
	Duration    float64
	Width       int64
	Height      int64
	CodecName   string
	FrameRate   string // as reported, e.g. "24000/1001"
	TotalFrames uint64
}

// HasVideo reports whether a video stream was found.
func (m *MediaInfo) HasVideo() bool {
	return m.Width > 0 && m.Height > 0
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int64  `json:"width"`
	Height       int64  `json:"height"`
	NbFrames     string `json:"nb_frames"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(ctx context.Context, ffprobePath, inputPath string) (*ffprobeOutput, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logging.Debug("running ffprobe", "path", ffprobePath, "input", inputPath)
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewCancelledError()
		}
		return nil, errors.WrapExecError(ffprobePath, err, strings.TrimSpace(stderr.String()))
	}

	return parseFFprobeOutput(output)
}

func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.NewParseError("failed to parse ffprobe output", err)
	}
	return &result, nil
}

// GetMediaInfo returns basic media information for a file.
func GetMediaInfo(ctx context.Context, ffprobePath, inputPath string) (*MediaInfo, error) {
	probe, err := runFFprobe(ctx, ffprobePath, inputPath)
	if err != nil {
		return nil, err
	}
	return extractMediaInfo(probe), nil
}

func extractMediaInfo(probe *ffprobeOutput) *MediaInfo {
	info := &MediaInfo{}

	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}

	// First video stream only
	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		info.Width = stream.Width
		info.Height = stream.Height
		info.CodecName = stream.CodecName
		info.FrameRate = pickFrameRate(stream.RFrameRate, stream.AvgFrameRate)
		if stream.NbFrames != "" {
			if frames, err := strconv.ParseUint(stream.NbFrames, 10, 64); err == nil {
				info.TotalFrames = frames
			}
		}
		break
	}

	return info
}

// pickFrameRate prefers r_frame_rate and falls back to avg_frame_rate.
// ffprobe reports "0/0" when a rate is unknown.
func pickFrameRate(candidates ...string) string {
	for _, r := range candidates {
		if r != "" && r != "0/0" {
			return r
		}
	}
	return ""
}

// String summarises the probe result for logs.
func (m *MediaInfo) String() string {
	return fmt.Sprintf("%s %dx%d @ %s, %.3fs", m.CodecName, m.Width, m.Height, m.FrameRate, m.Duration)
}
