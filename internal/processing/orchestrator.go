// Package processing runs the scene-detection and frame-list pipelines.
package processing

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/five82/scenechapters/internal/config"
	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/ffmpeg"
	"github.com/five82/scenechapters/internal/ffprobe"
	"github.com/five82/scenechapters/internal/frames"
	"github.com/five82/scenechapters/internal/logging"
	"github.com/five82/scenechapters/internal/reporter"
	"github.com/five82/scenechapters/internal/scd"
	"github.com/five82/scenechapters/internal/util"
)

// Result contains the outcome of a single run.
type Result struct {
	InputFile    string
	Pipeline     string
	ChaptersFile string
	ScenesFile   string // video pipeline only
	ChapterCount int
	HWAccel      string
	Duration     time.Duration
}

// Process validates cfg and runs the pipeline matching the input type.
// Nothing is written until every precondition has been checked.
func Process(ctx context.Context, cfg *config.Config, rep reporter.Reporter) (*Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	if err := CheckPreconditions(cfg); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, errors.NewCancelledError()
	}

	if cfg.IsFrameList() {
		return ProcessFrameList(ctx, cfg, rep)
	}
	return ProcessVideo(ctx, cfg, rep)
}

// CheckPreconditions verifies the input and output paths and the
// configuration. Path problems and a missing frame rate are usage errors.
func CheckPreconditions(cfg *config.Config) error {
	if cfg.InputPath == "" {
		return errors.NewUsageError("an input file is required")
	}
	if !util.FileExists(cfg.InputPath) {
		return errors.NewUsageError(fmt.Sprintf("input file not found or not a regular file: %s", cfg.InputPath))
	}
	if cfg.OutputDir != "" && !util.DirectoryExists(cfg.OutputDir) {
		return errors.NewUsageError(fmt.Sprintf("output directory does not exist: %s", cfg.OutputDir))
	}

	if err := cfg.Validate(); err != nil {
		if stderrors.Is(err, config.ErrMissingFrameRate) {
			return errors.NewUsageError(fmt.Sprintf("--framerate is required for frame-index input %s", cfg.InputPath))
		}
		return errors.NewConfigError("invalid configuration", err)
	}

	if err := util.EnsureDirectoryWritable(outputDir(cfg)); err != nil {
		return errors.NewIOError("cannot write output", err)
	}
	return nil
}

func outputDir(cfg *config.Config) string {
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return filepath.Dir(cfg.InputPath)
}

// ProcessVideo detects scenes with ffmpeg and converts the resulting log
// into a chapter file. If ffmpeg fails the scene log may be left partially
// written, but no chapter file is produced.
func ProcessVideo(ctx context.Context, cfg *config.Config, rep reporter.Reporter) (*Result, error) {
	start := time.Now()
	scenesPath := util.ResolveOutputPath(cfg.InputPath, cfg.OutputDir, config.ScenesSuffix)
	chaptersPath := util.ResolveOutputPath(cfg.InputPath, cfg.OutputDir, config.ChaptersSuffix)

	var hwaccel string
	if cfg.DisableHWAccel {
		logging.Debug("hardware decoding disabled")
	} else {
		hwaccel = ffmpeg.DetectHWAccel(ctx, cfg.GPUProbeCommand)
		logging.Debug("accelerator probe", "command", cfg.GPUProbeCommand, "hwaccel", hwaccel)
	}

	sysInfo := util.GetSystemInfo()
	rep.Hardware(reporter.HardwareSummary{
		Hostname:    sysInfo.Hostname,
		Accelerator: hwaccel,
	})

	summary := reporter.InitializationSummary{
		InputFile:    util.GetFilename(cfg.InputPath),
		Pipeline:     reporter.PipelineVideo,
		ChaptersFile: chaptersPath,
		ScenesFile:   scenesPath,
		FrameRate:    cfg.FrameRate,
	}

	// Probing only feeds progress and the summary, so failures are not fatal.
	var durationSecs float64
	if cfg.FFprobePath != "" {
		info, err := ffprobe.GetMediaInfo(ctx, cfg.FFprobePath, cfg.InputPath)
		switch {
		case errors.IsCancelled(err):
			return nil, err
		case err != nil:
			logging.Debug("ffprobe failed", "input", cfg.InputPath, "error", err)
			rep.Warning(fmt.Sprintf("Could not probe %s, progress will not be shown", summary.InputFile))
		default:
			logging.Debug("probed input", "info", info.String())
			durationSecs = info.Duration
			if info.Duration > 0 {
				summary.Duration = util.FormatSeconds(info.Duration)
			}
			if info.HasVideo() {
				summary.Resolution = fmt.Sprintf("%dx%d", info.Width, info.Height)
			}
			if summary.FrameRate == "" {
				summary.FrameRate = info.FrameRate
			}
		}
	}
	rep.Initialization(summary)

	rep.DetectionStarted(reporter.DetectionInfo{
		Threshold:    cfg.SceneThreshold,
		HWAccel:      hwaccel,
		DurationSecs: durationSecs,
	})

	detectStart := time.Now()
	err := scd.DetectScenes(ctx, scd.Params{
		FFmpegPath: cfg.FFmpegPath,
		Input:      cfg.InputPath,
		LogPath:    scenesPath,
		Threshold:  cfg.SceneThreshold,
		FrameRate:  cfg.FrameRate,
		HWAccel:    hwaccel,
		Duration:   durationSecs,
		OnProgress: func(p ffmpeg.Progress) {
			rep.DetectionProgress(reporter.ProgressSnapshot{
				CurrentFrame: p.CurrentFrame,
				Percent:      p.Percent,
				Speed:        p.Speed,
				FPS:          p.FPS,
				ETA:          p.ETA,
			})
		},
	})
	if err != nil {
		return nil, err
	}
	rep.DetectionComplete(reporter.DetectionOutcome{
		ScenesFile: scenesPath,
		Elapsed:    time.Since(detectStart),
	})

	count, err := writeChapters(chaptersPath, scd.ParseSceneLogFile(scenesPath), rep)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		rep.Warning(fmt.Sprintf("No scene changes scored above %g", cfg.SceneThreshold))
	}

	return &Result{
		InputFile:    cfg.InputPath,
		Pipeline:     reporter.PipelineVideo,
		ChaptersFile: chaptersPath,
		ScenesFile:   scenesPath,
		ChapterCount: count,
		HWAccel:      hwaccel,
		Duration:     time.Since(start),
	}, nil
}

// ProcessFrameList converts a frame-index list into a chapter file using
// the configured frame rate.
func ProcessFrameList(ctx context.Context, cfg *config.Config, rep reporter.Reporter) (*Result, error) {
	start := time.Now()

	fps, err := cfg.FramesPerSecond()
	if err != nil {
		return nil, errors.NewConfigError("invalid frame rate", err)
	}

	chaptersPath := util.ResolveOutputPath(cfg.InputPath, cfg.OutputDir, config.ChaptersSuffix)
	rep.Initialization(reporter.InitializationSummary{
		InputFile:    util.GetFilename(cfg.InputPath),
		Pipeline:     reporter.PipelineFrames,
		ChaptersFile: chaptersPath,
		FrameRate:    cfg.FrameRate,
	})
	rep.StageProgress(reporter.StageProgress{
		Stage:   "chapters",
		Message: fmt.Sprintf("Converting frame indices at %g fps", fps),
	})

	if ctx.Err() != nil {
		return nil, errors.NewCancelledError()
	}

	count, err := writeChapters(chaptersPath, frames.FileTimestamps(cfg.InputPath, fps), rep)
	if err != nil {
		return nil, err
	}

	return &Result{
		InputFile:    cfg.InputPath,
		Pipeline:     reporter.PipelineFrames,
		ChaptersFile: chaptersPath,
		ChapterCount: count,
		Duration:     time.Since(start),
	}, nil
}
