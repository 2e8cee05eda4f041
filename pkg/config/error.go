package config

import "errors"

var (
	ErrConfigFileUnreadable = errors.New("config file does not exist or is not readable")
	ErrConfigSectionMissing = errors.New("section does not exist in the config file")
	ErrConfigBooleanInvalid = errors.New("variable must be a boolean 'true' or 'false'")
	ErrConfigIntegerInvalid = errors.New("variable must be an integer")

	ErrStatusUnrecognized = errors.New("changer status output is not in a recognized format")

	ErrDriveReadyTimeout = errors.New("timeout waiting for drive to signal that it is loaded")

	ErrSGNodeUnresolvable = errors.New("could not resolve an sg node for the drive device")

	ErrPlatformUnsupported = errors.New("unsupported platform")

	ErrUnknownCommand = errors.New("unknown changer command")
)
