package config

import (
	"os"
	"testing"
	"time"

	"github.com/itohio/pmmon/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
	assert.Equal(t, "strict", cfg.Frame.Checksum)
	assert.Equal(t, 5*time.Millisecond, cfg.Timing.MultiplexPeriod)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.DebouncePeriod)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.Mock.FramePeriod)
	assert.Equal(t, uint16(35), cfg.Mock.PM2_5)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
  baud_rate: 19200

frame:
  checksum: lenient

timing:
  multiplex_period: 4ms
  debounce_period: 80ms

log:
  level: debug

mock:
  frame_period: 200ms
  pm1_0: 5
  pm2_5: 60
  pm10: 120
  drift: 3
  corrupt_every: 7
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 19200, cfg.Serial.BaudRate)
	assert.Equal(t, 4*time.Millisecond, cfg.Timing.MultiplexPeriod)
	assert.Equal(t, 80*time.Millisecond, cfg.Timing.DebouncePeriod)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 200*time.Millisecond, cfg.Mock.FramePeriod)
	assert.Equal(t, uint16(5), cfg.Mock.PM1_0)
	assert.Equal(t, uint16(60), cfg.Mock.PM2_5)
	assert.Equal(t, uint16(120), cfg.Mock.PM10)
	assert.Equal(t, uint16(3), cfg.Mock.Drift)
	assert.Equal(t, 7, cfg.Mock.CorruptEvery)

	mode, err := cfg.ChecksumMode()
	require.NoError(t, err)
	assert.Equal(t, frame.Lenient, mode)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidChecksumMode(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("frame:\n  checksum: sometimes\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
timing:
  multiplex_period: 0s
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)                      // default
	assert.Equal(t, 5*time.Millisecond, cfg.Timing.MultiplexPeriod) // default
	assert.Equal(t, "strict", cfg.Frame.Checksum)                   // default
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyS1"
	cfg.Mock.PM10 = 77

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS1", loaded.Serial.Port)
	assert.Equal(t, uint16(77), loaded.Mock.PM10)
}

func TestChecksumMode(t *testing.T) {
	tests := []struct {
		in      string
		want    frame.ChecksumMode
		wantErr bool
	}{
		{in: "", want: frame.Strict},
		{in: "strict", want: frame.Strict},
		{in: " Lenient ", want: frame.Lenient},
		{in: "off", wantErr: true},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Frame.Checksum = tt.in
		got, err := cfg.ChecksumMode()
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoad_GPIO(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
gpio:
  chip: gpiochip4
  digits: [7, 8]
  active_low: false
`
	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "gpiochip4", cfg.GPIO.Chip)
	assert.Equal(t, []int{7, 8}, cfg.GPIO.Digits)
	assert.Equal(t, Default().GPIO.Segments, cfg.GPIO.Segments) // default
	assert.False(t, cfg.GPIO.ActiveLow)
}

func TestGPIOConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(g *GPIOConfig)
		wantErr bool
	}{
		{name: "defaults", modify: func(g *GPIOConfig) {}},
		{name: "six segments", modify: func(g *GPIOConfig) { g.Segments = g.Segments[:6] }, wantErr: true},
		{name: "three digits", modify: func(g *GPIOConfig) { g.Digits = []int{1, 2, 3} }, wantErr: true},
		{name: "duplicate offset", modify: func(g *GPIOConfig) { g.ButtonS4 = g.ButtonS3 }, wantErr: true},
		{name: "led on segment", modify: func(g *GPIOConfig) { g.SafeLED = g.Segments[0] }, wantErr: true},
		{name: "negative offset", modify: func(g *GPIOConfig) { g.UnsafeLED = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Default().GPIO
			tt.modify(&g)
			err := g.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
