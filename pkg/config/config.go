package config

import (
	"os"
	"strings"
	"time"

	"github.com/itohio/pmmon/pkg/frame"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Frame  FrameConfig  `yaml:"frame"`
	Timing TimingConfig `yaml:"timing"`
	Log    LogConfig    `yaml:"log"`
	Mock   MockConfig   `yaml:"mock"`
	GPIO   GPIOConfig   `yaml:"gpio"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// FrameConfig contains frame validation settings.
type FrameConfig struct {
	Checksum string `yaml:"checksum"` // "strict" (default) or "lenient"
}

// TimingConfig contains the display and button timer periods.
type TimingConfig struct {
	MultiplexPeriod time.Duration `yaml:"multiplex_period"`
	DebouncePeriod  time.Duration `yaml:"debounce_period"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // logrus level name
}

// MockConfig contains mock sensor configuration.
type MockConfig struct {
	FramePeriod  time.Duration `yaml:"frame_period"`  // Time between frames
	PM1_0        uint16        `yaml:"pm1_0"`         // Base PM1.0 concentration (ug/m3)
	PM2_5        uint16        `yaml:"pm2_5"`         // Base PM2.5 concentration (ug/m3)
	PM10         uint16        `yaml:"pm10"`          // Base PM10 concentration (ug/m3)
	Drift        uint16        `yaml:"drift"`         // Peak deviation from the base values
	CorruptEvery int           `yaml:"corrupt_every"` // Corrupt every Nth frame (0 = never)
}

// GPIOConfig maps the front panel onto Linux GPIO character-device lines.
// Offsets are line numbers on Chip.
type GPIOConfig struct {
	Chip      string `yaml:"chip"`       // e.g. gpiochip0
	Segments  []int  `yaml:"segments"`   // a..g
	Digits    []int  `yaml:"digits"`     // tens, units
	SafeLED   int    `yaml:"safe_led"`   // Safe indicator
	UnsafeLED int    `yaml:"unsafe_led"` // Unsafe indicator
	ButtonS3  int    `yaml:"button_s3"`  // Selects PM2.5
	ButtonS4  int    `yaml:"button_s4"`  // Selects PM10
	ActiveLow bool   `yaml:"active_low"` // Segments and digits light on a low level
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyUSB0",
			BaudRate: 9600,
		},
		Frame: FrameConfig{
			Checksum: frame.Strict.String(),
		},
		Timing: TimingConfig{
			MultiplexPeriod: 5 * time.Millisecond,
			DebouncePeriod:  100 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
		Mock: MockConfig{
			FramePeriod:  time.Second,
			PM1_0:        12,
			PM2_5:        35,
			PM10:         48,
			Drift:        20,
			CorruptEvery: 0,
		},
		GPIO: GPIOConfig{
			Chip:      "gpiochip0",
			Segments:  []int{5, 6, 13, 19, 26, 16, 20},
			Digits:    []int{21, 12},
			SafeLED:   23,
			UnsafeLED: 24,
			ButtonS3:  17,
			ButtonS4:  27,
			ActiveLow: true,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.ensureDefaults()

	if _, err := cfg.ChecksumMode(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// ChecksumMode parses Frame.Checksum.
func (c *Config) ChecksumMode() (frame.ChecksumMode, error) {
	switch strings.ToLower(strings.TrimSpace(c.Frame.Checksum)) {
	case "", "strict":
		return frame.Strict, nil
	case "lenient":
		return frame.Lenient, nil
	default:
		return frame.Strict, errors.Errorf("invalid checksum mode %q (want strict or lenient)", c.Frame.Checksum)
	}
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Frame.Checksum == "" {
		c.Frame.Checksum = def.Frame.Checksum
	}

	if c.Timing.MultiplexPeriod == 0 {
		c.Timing.MultiplexPeriod = def.Timing.MultiplexPeriod
	}
	if c.Timing.DebouncePeriod == 0 {
		c.Timing.DebouncePeriod = def.Timing.DebouncePeriod
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}

	if c.Mock.FramePeriod == 0 {
		c.Mock.FramePeriod = def.Mock.FramePeriod
	}

	if c.GPIO.Chip == "" {
		c.GPIO.Chip = def.GPIO.Chip
	}
	if len(c.GPIO.Segments) == 0 {
		c.GPIO.Segments = def.GPIO.Segments
	}
	if len(c.GPIO.Digits) == 0 {
		c.GPIO.Digits = def.GPIO.Digits
	}
}

// Validate checks that the GPIO map names exactly seven segment lines, two
// digit lines and no offset twice.
func (g *GPIOConfig) Validate() error {
	if len(g.Segments) != 7 {
		return errors.Errorf("gpio: want 7 segment lines, got %d", len(g.Segments))
	}
	if len(g.Digits) != 2 {
		return errors.Errorf("gpio: want 2 digit lines, got %d", len(g.Digits))
	}

	offsets := append([]int{}, g.Segments...)
	offsets = append(offsets, g.Digits...)
	offsets = append(offsets, g.SafeLED, g.UnsafeLED, g.ButtonS3, g.ButtonS4)

	seen := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		if o < 0 {
			return errors.Errorf("gpio: negative line offset %d", o)
		}
		if seen[o] {
			return errors.Errorf("gpio: line %d used twice", o)
		}
		seen[o] = true
	}
	return nil
}
