package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no autolink.yaml exists in the working directory or its ancestors.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrProjectNotFound is returned when neither a configuration file nor a package manifest
	// can be found in the working directory or its ancestors.
	ErrProjectNotFound = zerr.New("project root not found")

	// ErrInvalidConfig is returned when the configuration file contains invalid values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrInvalidDependencyName is returned when a workspace declaration uses an invalid package name.
	ErrInvalidDependencyName = zerr.New("invalid dependency name")

	// ErrTransformFailed is returned when the platform transform fails for a candidate package.
	ErrTransformFailed = zerr.New("module transform failed")

	// ErrInvalidDescriptor is returned when a native module descriptor exists but cannot be parsed.
	ErrInvalidDescriptor = zerr.New("invalid module descriptor")

	// ErrNoPlatforms is returned when modules are requested without any target platform.
	ErrNoPlatforms = zerr.New("no target platforms")

	// ErrUnsupportedOutput is returned when an unknown output format is requested.
	ErrUnsupportedOutput = zerr.New("unsupported output format")
)
