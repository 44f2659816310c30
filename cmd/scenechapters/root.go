package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/scenechapters/internal/config"
	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/logging"
	"github.com/five82/scenechapters/internal/processing"
	"github.com/five82/scenechapters/internal/reporter"
	"github.com/five82/scenechapters/internal/util"
)

// cliArgs holds the parsed flags of the root command.
type cliArgs struct {
	inputPath   string
	outputDir   string
	frameRate   string
	noNV        bool
	threshold   float64
	configPath  string
	verbose     bool
	jsonOutput  bool
	ffmpegPath  string
	ffprobePath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var args cliArgs

	cmd := &cobra.Command{
		Use:   appName + " -i INPUT [-o DIR] [-f RATE] [--no-nv]",
		Short: "Generate chapter files from scene changes",
		Long: `Generate an OGM chapter file from a video or a frame-index list.

Video input is run through ffmpeg's scene filter; the raw filter log is kept as
<name>_scenes.txt and every detected cut becomes a chapter in <name>_chapters.txt.
A .txt input is read as one frame index per line (for example a dovi_tool scene
list) and converted with --framerate.`,
		Example: `  scenechapters -i movie.mkv
  scenechapters -i movie.mkv -o chapters/ --threshold 0.3 --no-nv
  scenechapters -i RPU_scenes.txt -f 24000/1001`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUsageError(err.Error())
	})

	f := cmd.Flags()
	f.StringVarP(&args.inputPath, "input", "i", "", "input video or frame-index list (.txt)")
	f.StringVarP(&args.outputDir, "output", "o", "", "existing output directory (defaults to the input's directory)")
	f.StringVarP(&args.frameRate, "framerate", "f", "", "frame rate such as 24, 23.976 or 24000/1001 (required for .txt input)")
	f.BoolVar(&args.noNV, "no-nv", false, "do not probe for an NVIDIA GPU; always decode in software")
	f.Float64Var(&args.threshold, "threshold", config.DefaultSceneThreshold, "scene score (0.0-1.0) a frame must exceed to start a chapter")
	f.StringVar(&args.configPath, "config", "", "YAML config file (default: ./"+config.FileName+" or ~/.config/scenechapters/config.yaml)")
	f.BoolVarP(&args.verbose, "verbose", "v", false, "enable debug logging on stderr")
	f.BoolVar(&args.jsonOutput, "json", false, "emit NDJSON progress events on stdout")
	f.StringVar(&args.ffmpegPath, "ffmpeg", config.DefaultFFmpegPath, "ffmpeg executable")
	f.StringVar(&args.ffprobePath, "ffprobe", config.DefaultFFprobePath, "ffprobe executable (empty to skip probing)")

	cmd.AddCommand(newVersionCmd(stdout), newInitConfigCmd(stdout))
	return cmd
}

// usageArgs turns positional argument errors into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.NewUsageError(err.Error())
		}
		return nil
	}
}

func runGenerate(cmd *cobra.Command, args cliArgs, stdout, stderr io.Writer) error {
	if args.inputPath == "" {
		return errors.NewUsageError("input path is required (-i/--input)")
	}

	cfg, cfgFile, err := buildConfig(cmd.Flags(), args)
	if err != nil {
		return err
	}

	logging.Setup(cfg.Verbose, args.jsonOutput, stderr)
	if cfgFile != "" {
		logging.Debug("loaded config file", "path", cfgFile)
	}
	logging.Debug("configuration",
		"input", cfg.InputPath,
		"output", cfg.OutputDir,
		"framerate", cfg.FrameRate,
		"threshold", cfg.SceneThreshold,
		"disable_hwaccel", cfg.DisableHWAccel,
		"ffmpeg", cfg.FFmpegPath,
		"ffprobe", cfg.FFprobePath)

	var rep reporter.Reporter
	if args.jsonOutput {
		rep = reporter.NewJSONReporterWithWriter(stdout)
	} else {
		rep = reporter.NewTerminalReporterWithWriters(stdout, stderr, reporter.IsTerminal(stderr), cfg.Verbose)
	}

	start := time.Now()
	result, err := processing.Process(cmd.Context(), cfg, rep)
	if err != nil {
		processing.ReportError(rep, err)
		return &reportedError{err: err}
	}

	rep.OperationComplete(fmt.Sprintf("Wrote %d chapters to %s in %s",
		result.ChapterCount, result.ChaptersFile,
		util.FormatElapsed(time.Since(start))))
	return nil
}

// buildConfig layers defaults, the config file and explicitly set flags,
// in that order of increasing precedence.
func buildConfig(flags *pflag.FlagSet, args cliArgs) (*config.Config, string, error) {
	cfg := config.NewConfig(args.inputPath, args.outputDir)
	cfg.FrameRate = args.frameRate

	cfgFile := args.configPath
	if cfgFile == "" {
		cfgFile = config.FindFile()
	}
	if cfgFile != "" {
		if err := config.LoadFile(cfg, cfgFile); err != nil {
			return nil, "", errors.NewConfigError("cannot load config file", err)
		}
	}

	if flags.Changed("threshold") {
		cfg.SceneThreshold = args.threshold
	}
	if flags.Changed("no-nv") {
		cfg.DisableHWAccel = args.noNV
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpegPath = args.ffmpegPath
	}
	if flags.Changed("ffprobe") {
		cfg.FFprobePath = args.ffprobePath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = args.verbose
	}

	return cfg, cfgFile, nil
}
