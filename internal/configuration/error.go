package configuration

import "errors"

var (
	// ErrInvalidSetting occurs when a configuration value cannot be parsed
	// into the type of its setting.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrSettingOutOfRange occurs when a configuration value was parsed, but
	// lies outside of what the machine can operate with.
	ErrSettingOutOfRange = errors.New("setting out of range")

	// ErrUnknownStorage occurs when the configured storage backend is not
	// one of [StorageMemory] or [StorageOS].
	ErrUnknownStorage = errors.New("unknown storage backend")
)
