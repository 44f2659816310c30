package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupVerbose(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	var buf bytes.Buffer
	Setup(true, false, &buf)
	Debug("probing accelerator", "command", "nvidia-smi")

	if !strings.Contains(buf.String(), "probing accelerator") {
		t.Errorf("debug message missing from verbose output: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "command=nvidia-smi") {
		t.Errorf("attribute missing from output: %q", buf.String())
	}
}

func TestSetupQuiet(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	var buf bytes.Buffer
	Setup(false, false, &buf)
	Debug("hidden")
	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be suppressed: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warning missing: %q", out)
	}
}

func TestSetupJSON(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	var buf bytes.Buffer
	Setup(false, true, &buf)
	Error("ffmpeg failed", "exit_code", 1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "ffmpeg failed" {
		t.Errorf("msg = %v", rec["msg"])
	}
}

func TestDisabledLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Enabled: false})
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf, Enabled: true}).WithPrefix("scd")
	l.Info("parsed", "chapters", 3)
	if !strings.Contains(buf.String(), "scd.chapters=3") {
		t.Errorf("group prefix missing: %q", buf.String())
	}
}
