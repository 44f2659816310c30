// Package config provides configuration types and defaults for scenechapters.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFrameRate indicates a frame rate that is not a positive number.
	ErrInvalidFrameRate = errors.New("invalid frame rate")

	// ErrMissingFrameRate indicates a frame-index list was given without a frame rate.
	ErrMissingFrameRate = errors.New("frame rate is required for frame-index input")

	// ErrInvalidThreshold indicates a scene threshold outside the valid 0.0-1.0 range.
	ErrInvalidThreshold = errors.New("scene threshold out of range")

	// ErrEmptyCommand indicates an external tool path was configured as empty.
	ErrEmptyCommand = errors.New("command path is empty")
)
