// Package scd runs ffmpeg scene change detection and reads back the
// timestamps it logs.
package scd

import (
	"context"
	"io"

	"github.com/five82/scenechapters/internal/ffmpeg"
	"github.com/five82/scenechapters/internal/logging"
)

// Params describes one detection run.
type Params struct {
	FFmpegPath string
	Input      string
	// LogPath is where ffmpeg writes the metadata=print log.
	LogPath   string
	Threshold float64
	// FrameRate overrides the input frame rate; passed to ffmpeg unchanged.
	FrameRate string
	HWAccel   string
	// Duration of the input in seconds for progress, zero if unknown.
	Duration   float64
	OnProgress ffmpeg.ProgressCallback
	Stderr     io.Writer
}

// DetectScenes runs ffmpeg with the scene filter and blocks until it exits.
// The log at p.LogPath may be partially written if ffmpeg fails.
func DetectScenes(ctx context.Context, p Params) error {
	args := ffmpeg.BuildSceneDetectArgs(&ffmpeg.SceneDetectParams{
		InputPath: p.Input,
		LogPath:   p.LogPath,
		Threshold: p.Threshold,
		FrameRate: p.FrameRate,
		HWAccel:   p.HWAccel,
	})

	logging.Global().WithPrefix("scd").Info("detecting scenes",
		"input", p.Input,
		"log", p.LogPath,
		"threshold", p.Threshold,
		"hwaccel", p.HWAccel)

	return ffmpeg.Run(ctx, ffmpeg.RunOptions{
		Path:       p.FFmpegPath,
		Args:       args,
		Duration:   p.Duration,
		OnProgress: p.OnProgress,
		Stderr:     p.Stderr,
	})
}
