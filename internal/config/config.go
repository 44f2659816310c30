// Package config provides configuration types and defaults for scenechapters.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default constants
const (
	// DefaultSceneThreshold is the scene score above which a frame starts a new chapter.
	DefaultSceneThreshold float64 = 0.2

	// DefaultFFmpegPath is the FFmpeg executable looked up in PATH.
	DefaultFFmpegPath = "ffmpeg"

	// DefaultFFprobePath is the FFprobe executable looked up in PATH.
	DefaultFFprobePath = "ffprobe"

	// DefaultGPUProbeCommand is the vendor diagnostic whose exit status signals a usable GPU.
	DefaultGPUProbeCommand = "nvidia-smi"

	// ScenesSuffix is appended to the input stem for the raw scene log.
	ScenesSuffix = "_scenes.txt"

	// ChaptersSuffix is appended to the input stem for the chapter file.
	ChaptersSuffix = "_chapters.txt"

	// FrameListExtension routes an input to the frame-index pipeline.
	FrameListExtension = ".txt"
)

// Config holds all configuration for a single run.
type Config struct {
	// Input/output paths
	InputPath string `yaml:"-"`
	OutputDir string `yaml:"-"` // Empty means beside the input

	// FrameRate is passed to ffmpeg verbatim as -r, and parsed as the divisor
	// for frame-index input.
	FrameRate string `yaml:"-"`

	// Scene detection
	SceneThreshold float64 `yaml:"scene_threshold"`
	DisableHWAccel bool    `yaml:"disable_hwaccel"`

	// External tools
	FFmpegPath      string `yaml:"ffmpeg_path"`
	FFprobePath     string `yaml:"ffprobe_path"`
	GPUProbeCommand string `yaml:"gpu_probe_command"`

	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values.
func NewConfig(inputPath, outputDir string) *Config {
	return &Config{
		InputPath:       inputPath,
		OutputDir:       outputDir,
		SceneThreshold:  DefaultSceneThreshold,
		FFmpegPath:      DefaultFFmpegPath,
		FFprobePath:     DefaultFFprobePath,
		GPUProbeCommand: DefaultGPUProbeCommand,
	}
}

// Validate checks the configuration for errors.
// The frame rate is only checked when the input is a frame-index list;
// for video input it is handed to ffmpeg untouched.
func (c *Config) Validate() error {
	if math.IsNaN(c.SceneThreshold) || c.SceneThreshold < 0 || c.SceneThreshold > 1 {
		return fmt.Errorf("%w: must be 0.0-1.0, got %g", ErrInvalidThreshold, c.SceneThreshold)
	}

	if c.FFmpegPath == "" {
		return fmt.Errorf("%w: ffmpeg", ErrEmptyCommand)
	}

	if c.IsFrameList() {
		if c.FrameRate == "" {
			return ErrMissingFrameRate
		}
		if _, err := ParseFrameRate(c.FrameRate); err != nil {
			return err
		}
	}

	return nil
}

// IsFrameList reports whether the input is a frame-index list rather than a video.
func (c *Config) IsFrameList() bool {
	return IsFrameList(c.InputPath)
}

// IsFrameList reports whether path names a frame-index list (case-insensitive .txt).
func IsFrameList(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), FrameListExtension)
}

// FramesPerSecond returns the parsed frame rate.
func (c *Config) FramesPerSecond() (float64, error) {
	if c.FrameRate == "" {
		return 0, ErrMissingFrameRate
	}
	return ParseFrameRate(c.FrameRate)
}

// ParseFrameRate parses a frame rate given as a decimal ("23.976") or a
// rational ("24000/1001"). The result must be a finite positive number.
func ParseFrameRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidFrameRate)
	}

	var fps float64
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: '%s'", ErrInvalidFrameRate, s)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: '%s'", ErrInvalidFrameRate, s)
		}
		fps = n / d
	} else {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: '%s'", ErrInvalidFrameRate, s)
		}
		fps = f
	}

	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return 0, fmt.Errorf("%w: must be greater than 0, got '%s'", ErrInvalidFrameRate, s)
	}
	return fps, nil
}
