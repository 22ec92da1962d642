package wire

import (
	"os"
	"strconv"
	"sync/atomic"
)

// Config controls optional safety checks of Writers and Readers.
// A Writer or Reader copies the configuration current at its construction.
type Config struct {
	// StrictUTF8: when true, ReadString fails with ErrInvalidUTF8 if the
	// payload is not valid UTF-8. Writers never validate.
	StrictUTF8 bool

	// CheckSize: when true, WriteMessage compares the bytes a Writable
	// emitted against its reported Size and fails with ErrSizeMismatch.
	CheckSize bool

	// MaxDepth bounds how many ReadMessage calls may be nested. Zero or
	// negative disables the limit.
	MaxDepth int

	// PackedFastPath: when true and the host is little-endian, fixed-width
	// packed writes copy the slice memory in one write instead of encoding
	// element by element.
	PackedFastPath bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		StrictUTF8:     true,
		CheckSize:      true,
		MaxDepth:       100,
		PackedFastPath: true,
	}
}

var config atomic.Pointer[Config]

// SetConfig sets the global wire configuration.
func SetConfig(c Config) { config.Store(&c) }

// CurrentConfig returns the global wire configuration.
func CurrentConfig() Config { return *config.Load() }

func init() {
	c := DefaultConfig()
	// Optional env toggles for test harnesses; defaults remain unchanged if unset.
	if v, ok := envBool("QUICKWIRE_STRICT_UTF8"); ok {
		c.StrictUTF8 = v
	}
	if v, ok := envBool("QUICKWIRE_CHECK_SIZE"); ok {
		c.CheckSize = v
	}
	if v, ok := envBool("QUICKWIRE_PACKED_FAST_PATH"); ok {
		c.PackedFastPath = v
	}
	if v := os.Getenv("QUICKWIRE_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDepth = n
		}
	}
	SetConfig(c)
}

func envBool(name string) (bool, bool) {
	switch os.Getenv(name) {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}
