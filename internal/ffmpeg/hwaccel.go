package ffmpeg

import (
	"context"
	"os/exec"
)

// HWAccelCUDA is the -hwaccel method used when an NVIDIA GPU is present.
const HWAccelCUDA = "cuda"

// DetectHWAccel runs probeCommand (normally nvidia-smi) and returns
// HWAccelCUDA if it exits successfully. A missing command or a non-zero
// exit means no acceleration and is not an error.
func DetectHWAccel(ctx context.Context, probeCommand string) string {
	if probeCommand == "" {
		return ""
	}
	if err := exec.CommandContext(ctx, probeCommand).Run(); err != nil {
		return ""
	}
	return HWAccelCUDA
}
