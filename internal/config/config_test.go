package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beacon_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimal = `
# beacon test config
DEVICE_NAME = bma400-beacon
SPI_DEVICE = /dev/spidev0.0
POWER_GATE_PIN = GPIO22
INT_PIN = GPIO17
SENSOR_MODE = lowpower
LISTEN_ADDR = :9000
`

func TestLoadMinimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "bma400-beacon", cfg.DeviceName)
	assert.Equal(t, "/dev/spidev0.0", cfg.SPIDevice)
	assert.Equal(t, "GPIO22", cfg.PowerGatePin)
	assert.Equal(t, "GPIO17", cfg.IntPin)
	assert.Equal(t, "lowpower", cfg.SensorMode)

	// Defaults survive when keys are absent.
	assert.Equal(t, int64(8_000_000), cfg.SPISpeedHz)
	assert.Equal(t, "rising", cfg.IntEdge)
	assert.Equal(t, 25, cfg.SensorODRHz)
	assert.Equal(t, 4, cfg.SensorRangeG)
	assert.Equal(t, 75, cfg.FIFOWatermarkFrames)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal+`
SENSOR_ODR_HZ = 100
SENSOR_RANGE_G = 8
INT_EDGE = falling
ACTIVITY_THRESHOLD = 0x20
FIFO_WATERMARK_FRAMES = 40
MQTT_BROKER = tcp://localhost:1883
`))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.SensorODRHz)
	assert.Equal(t, 8, cfg.SensorRangeG)
	assert.Equal(t, "falling", cfg.IntEdge)
	assert.Equal(t, byte(0x20), cfg.ActivityThreshold)
	assert.Equal(t, 40, cfg.FIFOWatermarkFrames)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, minimal+"BOGUS_KEY = 1\n"))
	assert.ErrorContains(t, err, "unknown config key")
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"SENSOR_ODR_HZ = 33",
		"SENSOR_RANGE_G = 5",
		"INT_EDGE = both",
		"SENSOR_DATA_SOURCE = 7",
		"SPI_SPEED_HZ = 99999999",
	}
	for _, line := range cases {
		_, err := Load(writeConfig(t, minimal+line+"\n"))
		assert.Error(t, err, line)
	}
}

func TestLoadRequiresCoreKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "DEVICE_NAME = x\n"))
	assert.Error(t, err)
}
