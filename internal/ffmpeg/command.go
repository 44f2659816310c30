// Package ffmpeg provides FFmpeg command building and execution.
package ffmpeg

// SceneDetectParams describes one scene detection pass.
type SceneDetectParams struct {
	InputPath string
	// LogPath receives ffmpeg's metadata=print output.
	LogPath   string
	Threshold float64
	// FrameRate is passed verbatim as the input -r option when set.
	FrameRate string
	// HWAccel is the -hwaccel method, empty for software decoding.
	HWAccel string
}

// BuildSceneDetectArgs returns the ffmpeg argument list for a scene
// detection pass. Decoded frames are discarded through the null muxer.
func BuildSceneDetectArgs(p *SceneDetectParams) []string {
	args := []string{"-hide_banner"}

	if p.HWAccel != "" {
		args = append(args, "-hwaccel", p.HWAccel)
	}
	if p.FrameRate != "" {
		args = append(args, "-r", p.FrameRate)
	}

	filters := NewVideoFilterChain().
		AddSceneSelect(p.Threshold).
		AddMetadataPrint(p.LogPath).
		Build()

	args = append(args,
		"-i", p.InputPath,
		"-map", "0:v",
		"-vf", filters,
		"-f", "null",
		"-",
	)
	return args
}
