package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindUsage, "Usage error"},
		{KindConfig, "Configuration error"},
		{KindParse, "Parse error"},
		{KindIO, "I/O error"},
		{KindCommand, "Command error"},
		{KindCancelled, "Operation cancelled"},
		{ErrorKind(99), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("permission denied")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "cannot create chapters file",
		Underlying: underlying,
	}

	want := "I/O error: cannot create chapters file: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("CoreError.Error() = %v, want %v", got, want)
	}

	err2 := &CoreError{Kind: KindUsage, Message: "input path is required"}
	want2 := "Usage error: input path is required"
	if got := err2.Error(); got != want2 {
		t.Errorf("CoreError.Error() = %v, want %v", got, want2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := NewParseError("line 3", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the underlying error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := &CoreError{Kind: KindParse, Message: "test1"}
	err2 := &CoreError{Kind: KindParse, Message: "test2"}
	err3 := &CoreError{Kind: KindConfig, Message: "test3"}

	if !err1.Is(err2) {
		t.Error("Same kind errors should match")
	}
	if err1.Is(err3) {
		t.Error("Different kind errors should not match")
	}
}

func TestCommandError(t *testing.T) {
	startErr := &CommandError{
		Command:    "ffmpeg",
		Kind:       CommandStart,
		Underlying: errors.New("not found"),
	}
	if got := startErr.Error(); got != "failed to execute ffmpeg: not found" {
		t.Errorf("CommandStart error = %v", got)
	}

	waitErr := &CommandError{
		Command:    "ffmpeg",
		Kind:       CommandWait,
		Underlying: errors.New("signal"),
	}
	if got := waitErr.Error(); got != "failed to wait for ffmpeg: signal" {
		t.Errorf("CommandWait error = %v", got)
	}

	failedErr := &CommandError{
		Command:  "ffmpeg",
		Kind:     CommandFailed,
		ExitCode: 1,
		Stderr:   "No such file or directory",
	}
	want := "command ffmpeg failed with exit code 1: No such file or directory"
	if got := failedErr.Error(); got != want {
		t.Errorf("CommandFailed error = %v, want %v", got, want)
	}

	bare := &CommandError{Command: "ffmpeg", Kind: CommandFailed, ExitCode: 187}
	if got := bare.Error(); got != "command ffmpeg failed with exit code 187" {
		t.Errorf("CommandFailed without stderr = %v", got)
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *CoreError
		kind ErrorKind
	}{
		{"NewUsageError", NewUsageError("missing input"), KindUsage},
		{"NewConfigError", NewConfigError("bad frame rate", nil), KindConfig},
		{"NewParseError", NewParseError("bad line", nil), KindParse},
		{"NewIOError", NewIOError("disk full", errors.New("no space")), KindIO},
		{"NewCommandStartError", NewCommandStartError("ffmpeg", errors.New("not found")), KindCommand},
		{"NewCommandFailedError", NewCommandFailedError("ffmpeg", 1, ""), KindCommand},
		{"NewCancelledError", NewCancelledError(), KindCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Expected %v, got %v", tt.kind, tt.err.Kind)
			}
		})
	}
}

func TestCommandFailedErrorExposesExitCode(t *testing.T) {
	err := NewCommandFailedError("ffmpeg", 8, "Invalid argument")

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("expected CommandError in chain")
	}
	if cmdErr.ExitCode != 8 {
		t.Errorf("ExitCode = %d, want 8", cmdErr.ExitCode)
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("converting frames: %w", NewConfigError("test", nil))

	if !IsKind(err, KindConfig) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, KindIO) {
		t.Error("IsKind should return false for non-matching kind")
	}
	if IsKind(errors.New("plain error"), KindConfig) {
		t.Error("IsKind should return false for non-CoreError")
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(NewCancelledError()) {
		t.Error("IsCancelled should return true for cancelled error")
	}
	if IsCancelled(NewUsageError("test")) {
		t.Error("IsCancelled should return false for non-cancelled error")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", NewUsageError("bad input"), 2},
		{"wrapped usage", fmt.Errorf("run: %w", NewUsageError("bad input")), 2},
		{"parse", NewParseError("bad", nil), 1},
		{"command", NewCommandFailedError("ffmpeg", 1, ""), 1},
		{"plain", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapExecError(t *testing.T) {
	t.Run("start failure", func(t *testing.T) {
		err := WrapExecError("ffmpeg", exec.ErrNotFound, "")
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Kind != CommandStart {
			t.Errorf("expected CommandStart, got %v", err)
		}
	})

	t.Run("exit failure", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("requires a POSIX shell")
		}
		runErr := exec.Command("sh", "-c", "exit 3").Run()
		err := WrapExecError("sh", runErr, "boom")
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("expected CommandError, got %v", err)
		}
		if cmdErr.Kind != CommandFailed || cmdErr.ExitCode != 3 || cmdErr.Stderr != "boom" {
			t.Errorf("unexpected command error: %+v", cmdErr)
		}
	})
}
