package util

import (
	"os"
	"runtime"
)

// SystemInfo identifies the host a run happens on.
type SystemInfo struct {
	Hostname  string
	GoVersion string
	OS        string
	Arch      string
}

// GetSystemInfo collects host details for the hardware summary and the
// version command. An unreadable hostname is reported as "unknown".
func GetSystemInfo() SystemInfo {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	return SystemInfo{
		Hostname:  hostname,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Platform returns "os/arch".
func (s SystemInfo) Platform() string {
	return s.OS + "/" + s.Arch
}
