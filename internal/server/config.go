package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/payment-clauses/internal/config"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address     string               `yaml:"address"`
	MaxBodySize string               `yaml:"maxBodySize"`
	Timeouts    TimeoutConfig        `yaml:"timeouts"`
	Logging     config.LoggingConfig `yaml:"logging"`

	bodySizeBytes int64
}

// TimeoutConfig holds the HTTP timeouts as Go duration strings ("10s", "1m").
// Empty values fall back to the defaults.
type TimeoutConfig struct {
	Read     string `yaml:"read"`
	Write    string `yaml:"write"`
	Idle     string `yaml:"idle"`
	Shutdown string `yaml:"shutdown"`

	read, write, idle, shutdown time.Duration
}

// ReadTimeout returns the maximum duration for reading a request.
func (t TimeoutConfig) ReadTimeout() time.Duration { return t.read }

// WriteTimeout returns the maximum duration for writing a response.
func (t TimeoutConfig) WriteTimeout() time.Duration { return t.write }

// IdleTimeout returns how long keep-alive connections may stay idle.
func (t TimeoutConfig) IdleTimeout() time.Duration { return t.idle }

// ShutdownTimeout returns how long graceful shutdown waits for open requests.
func (t TimeoutConfig) ShutdownTimeout() time.Duration { return t.shutdown }

func (t *TimeoutConfig) normalize() error {
	fields := []struct {
		name  string
		raw   *string
		value *time.Duration
		def   time.Duration
	}{
		{"read", &t.Read, &t.read, constants.DefaultReadTimeout},
		{"write", &t.Write, &t.write, constants.DefaultWriteTimeout},
		{"idle", &t.Idle, &t.idle, constants.DefaultIdleTimeout},
		{"shutdown", &t.Shutdown, &t.shutdown, constants.DefaultShutdownTimeout},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(*f.raw)
		if raw == "" {
			*f.value = f.def
			*f.raw = f.def.String()
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s timeout %q: %w", f.name, raw, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s timeout must be positive, got %s", f.name, raw)
		}
		*f.value = d
	}
	return nil
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:       constants.DefaultServerAddress,
		MaxBodySize:   fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
		Logging:       config.LoggingConfig{},
		bodySizeBytes: constants.DefaultMaxBodySizeBytes,
	}

	if path == "" {
		return cfg, cfg.normalize()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, cfg.normalize()
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the configured maximum request body size in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the configured maximum request body size.
func (c *Config) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySizeBytes = size
		c.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if err := c.Timeouts.normalize(); err != nil {
		return err
	}

	sizeStr := strings.TrimSpace(c.MaxBodySize)
	if sizeStr == "" {
		c.bodySizeBytes = constants.DefaultMaxBodySizeBytes
		c.MaxBodySize = fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
