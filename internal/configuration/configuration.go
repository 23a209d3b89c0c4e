package configuration

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler maps the raw key/value pairs of a configuration file to typed
// machine settings.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns the integer value of a key, the fallback for a missing
// or empty key, or an [ErrInvalidSetting] for a malformed one.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string, fallback int) (int, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return fallback, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidSetting, key, value, err)
	}

	return intValue, nil
}

// MapKeyToBytes returns the size value of a key in bytes. Sizes are given in
// human notation, e.g. "128 KiB" or "64kB", as understood by
// [humanize.ParseBytes].
func (c *Handler) MapKeyToBytes(envMap map[string]string, key string, fallback uint64) (uint64, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return fallback, nil
	}

	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidSetting, key, value, err)
	}

	return size, nil
}
