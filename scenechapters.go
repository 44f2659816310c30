// Package scenechapters generates chapter files from scene changes.
//
// A video is run through ffmpeg's scene filter and every detected cut
// becomes a chapter. A frame-index list, such as the scene list dovi_tool
// exports from a Dolby Vision RPU, is converted directly using a frame rate.
//
// Basic usage:
//
//	gen, err := scenechapters.New(
//	    scenechapters.WithSceneThreshold(0.3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Run(ctx, "movie.mkv", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d chapters written to %s\n", result.ChapterCount, result.ChaptersFile)
package scenechapters

import (
	"context"

	"github.com/five82/scenechapters/internal/config"
	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/processing"
	"github.com/five82/scenechapters/internal/reporter"
)

// DefaultSceneThreshold is the scene score used when none is configured.
const DefaultSceneThreshold = config.DefaultSceneThreshold

// Generator produces chapter files. It is safe to reuse for several inputs.
type Generator struct {
	config   *config.Config
	reporter reporter.Reporter
}

// Result describes a chapter file that was written.
type Result struct {
	ChaptersFile string
	// ScenesFile is the raw ffmpeg scene log, empty for frame-index input.
	ScenesFile   string
	ChapterCount int
	// HWAccel is the ffmpeg -hwaccel method used, empty for software decoding.
	HWAccel string
}

// Option configures the generator.
type Option func(*Generator)

// New creates a new Generator with the given options.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		config:   config.NewConfig("", ""),
		reporter: reporter.NullReporter{},
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := g.config.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid generator options", err)
	}

	return g, nil
}

// WithFrameRate sets the frame rate, e.g. "24", "23.976" or "24000/1001".
// It is required for frame-index input and overrides the input rate for video.
func WithFrameRate(rate string) Option {
	return func(g *Generator) {
		g.config.FrameRate = rate
	}
}

// WithSceneThreshold sets the scene score (0.0-1.0) a frame must exceed to
// start a new chapter.
func WithSceneThreshold(threshold float64) Option {
	return func(g *Generator) {
		g.config.SceneThreshold = threshold
	}
}

// WithoutHWAccel disables the NVIDIA probe and always decodes in software.
func WithoutHWAccel() Option {
	return func(g *Generator) {
		g.config.DisableHWAccel = true
	}
}

// WithFFmpegPath sets the ffmpeg executable.
func WithFFmpegPath(path string) Option {
	return func(g *Generator) {
		g.config.FFmpegPath = path
	}
}

// WithFFprobePath sets the ffprobe executable. An empty path skips probing,
// which only disables progress percentages.
func WithFFprobePath(path string) Option {
	return func(g *Generator) {
		g.config.FFprobePath = path
	}
}

// WithReporter sends progress updates to rep.
func WithReporter(rep Reporter) Option {
	return func(g *Generator) {
		if rep != nil {
			g.reporter = rep
		}
	}
}

// WithEventHandler sends progress updates to handler as typed events.
func WithEventHandler(handler EventHandler) Option {
	return func(g *Generator) {
		if handler != nil {
			g.reporter = newEventReporter(handler)
		}
	}
}

func (g *Generator) configFor(input, outputDir string) *config.Config {
	cfg := *g.config
	cfg.InputPath = input
	cfg.OutputDir = outputDir
	return &cfg
}

// Run routes input by extension: ".txt" files (any case) are converted as
// frame-index lists, anything else goes through scene detection. The chapter
// file is written to outputDir, or beside the input when outputDir is empty.
func (g *Generator) Run(ctx context.Context, input, outputDir string) (*Result, error) {
	r, err := processing.Process(ctx, g.configFor(input, outputDir), g.reporter)
	if err != nil {
		return nil, err
	}
	return newResult(r), nil
}

// DetectScenes runs ffmpeg scene detection on a video and writes
// <stem>_scenes.txt and <stem>_chapters.txt.
func (g *Generator) DetectScenes(ctx context.Context, input, outputDir string) (*Result, error) {
	cfg := g.configFor(input, outputDir)
	if cfg.IsFrameList() {
		return nil, errors.NewUsageError("scene detection needs a video input, got a frame-index list: " + input)
	}
	if err := processing.CheckPreconditions(cfg); err != nil {
		return nil, err
	}

	r, err := processing.ProcessVideo(ctx, cfg, g.reporter)
	if err != nil {
		return nil, err
	}
	return newResult(r), nil
}

// ConvertFrames converts a list of frame indices, one per line, into
// <stem>_chapters.txt using the configured frame rate.
func (g *Generator) ConvertFrames(ctx context.Context, input, outputDir string) (*Result, error) {
	cfg := g.configFor(input, outputDir)
	if cfg.FrameRate == "" {
		return nil, errors.NewUsageError("a frame rate is required to convert frame indices")
	}
	if err := processing.CheckPreconditions(cfg); err != nil {
		return nil, err
	}

	r, err := processing.ProcessFrameList(ctx, cfg, g.reporter)
	if err != nil {
		return nil, err
	}
	return newResult(r), nil
}

func newResult(r *processing.Result) *Result {
	return &Result{
		ChaptersFile: r.ChaptersFile,
		ScenesFile:   r.ScenesFile,
		ChapterCount: r.ChapterCount,
		HWAccel:      r.HWAccel,
	}
}
