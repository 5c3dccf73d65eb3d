package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// Identity
	DeviceName string

	// Bus
	SPIDevice    string
	SPISpeedHz   int64
	PowerGatePin string

	// Interrupt
	IntPin  string
	IntEdge string // "rising" or "falling"

	// Sensor
	SensorMode       string // "lowpower", "fifo_watermark", "activity"
	SensorODRHz      int
	SensorRangeG     int
	SensorDataSource byte // 0=filt1, 1=filt2, 2=filt_lp

	// Activity mode
	ActivityThreshold byte
	ActivityDuration  int

	// FIFO watermark mode, in XYZ frames
	FIFOWatermarkFrames int

	// Wireless
	ListenAddr  string
	DeviceWSURL string // dialed by console/bridge tools

	// MQTT bridge
	MQTTBroker         string
	MQTTClientIDBridge string
	MQTTTopicAccel     string

	// Register debug service
	RegDebugListenAddr  string
	RegDebugWriteRanges string // e.g. "0x19-0x1B,0x1F,0x7E"

	// Serial log console
	LogSerialPort string
	LogBaudRate   uint

	// Offline classifier
	ClassifyWindowSize int
}

// Package-level unexported variables for the singleton pattern:
// globalConfig is only reachable through InitGlobal/Get, configOnce
// makes initialization idempotent, and configMu lets concurrent
// readers share the instance safely.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		SPISpeedHz:          8_000_000,
		IntEdge:             "rising",
		SensorODRHz:         25,
		SensorRangeG:        4,
		ActivityThreshold:   0x10,
		ActivityDuration:    15,
		FIFOWatermarkFrames: 75,
		MQTTTopicAccel:      "motion/accel",
		LogBaudRate:         115200,
		ClassifyWindowSize:  25,
	}
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	case "DEVICE_NAME":
		c.DeviceName = value

	// Bus
	case "SPI_DEVICE":
		c.SPIDevice = value
	case "SPI_SPEED_HZ":
		hz, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SPI_SPEED_HZ %q: %w", value, err)
		}
		if hz <= 0 || hz > 10_000_000 {
			return fmt.Errorf("SPI_SPEED_HZ must be 1-10000000, got %d", hz)
		}
		c.SPISpeedHz = hz
	case "POWER_GATE_PIN":
		c.PowerGatePin = value

	// Interrupt
	case "INT_PIN":
		c.IntPin = value
	case "INT_EDGE":
		if value != "rising" && value != "falling" {
			return fmt.Errorf("INT_EDGE must be rising or falling, got %q", value)
		}
		c.IntEdge = value

	// Sensor
	case "SENSOR_MODE":
		c.SensorMode = value
	case "SENSOR_ODR_HZ":
		odr, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_ODR_HZ %q: %w", value, err)
		}
		switch odr {
		case 12, 25, 50, 100, 200, 400, 800:
		default:
			return fmt.Errorf("SENSOR_ODR_HZ must be one of 12, 25, 50, 100, 200, 400, 800, got %d", odr)
		}
		c.SensorODRHz = odr
	case "SENSOR_RANGE_G":
		rangeVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_RANGE_G %q: %w", value, err)
		}
		switch rangeVal {
		case 2, 4, 8, 16:
		default:
			return fmt.Errorf("SENSOR_RANGE_G must be 2, 4, 8 or 16, got %d", rangeVal)
		}
		c.SensorRangeG = rangeVal
	case "SENSOR_DATA_SOURCE":
		src, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_DATA_SOURCE %q: %w", value, err)
		}
		if src < 0 || src > 2 {
			return fmt.Errorf("SENSOR_DATA_SOURCE must be 0-2 (0=filt1, 1=filt2, 2=filt_lp), got %d", src)
		}
		c.SensorDataSource = byte(src)

	// Activity mode
	case "ACTIVITY_THRESHOLD":
		thr, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITY_THRESHOLD %q: %w", value, err)
		}
		c.ActivityThreshold = byte(thr)
	case "ACTIVITY_DURATION":
		dur, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITY_DURATION %q: %w", value, err)
		}
		if dur < 0 || dur > 65535 {
			return fmt.Errorf("ACTIVITY_DURATION must be 0-65535, got %d", dur)
		}
		c.ActivityDuration = dur

	// FIFO watermark mode
	case "FIFO_WATERMARK_FRAMES":
		frames, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid FIFO_WATERMARK_FRAMES %q: %w", value, err)
		}
		if frames < 1 || frames > 255 {
			return fmt.Errorf("FIFO_WATERMARK_FRAMES must be 1-255, got %d", frames)
		}
		c.FIFOWatermarkFrames = frames

	// Wireless
	case "LISTEN_ADDR":
		c.ListenAddr = value
	case "DEVICE_WS_URL":
		c.DeviceWSURL = value

	// MQTT bridge
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_BRIDGE":
		c.MQTTClientIDBridge = value
	case "MQTT_TOPIC_ACCEL":
		c.MQTTTopicAccel = value

	// Register debug service
	case "REGDEBUG_LISTEN_ADDR":
		c.RegDebugListenAddr = value
	case "REGDEBUG_WRITE_RANGES":
		c.RegDebugWriteRanges = value

	// Serial log console
	case "LOG_SERIAL_PORT":
		c.LogSerialPort = value
	case "LOG_BAUD_RATE":
		rate, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid LOG_BAUD_RATE %q: %w", value, err)
		}
		c.LogBaudRate = uint(rate)

	// Offline classifier
	case "CLASSIFY_WINDOW_SIZE":
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CLASSIFY_WINDOW_SIZE %q: %w", value, err)
		}
		if size < 1 {
			return fmt.Errorf("CLASSIFY_WINDOW_SIZE must be positive, got %d", size)
		}
		c.ClassifyWindowSize = size

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.DeviceName == "" {
		return fmt.Errorf("DEVICE_NAME is required")
	}
	if c.SPIDevice == "" {
		return fmt.Errorf("SPI_DEVICE is required")
	}
	if c.PowerGatePin == "" {
		return fmt.Errorf("POWER_GATE_PIN is required")
	}
	if c.IntPin == "" {
		return fmt.Errorf("INT_PIN is required")
	}
	if c.SensorMode == "" {
		return fmt.Errorf("SENSOR_MODE is required")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses
// sync.Once so repeated calls are harmless.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be
// called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
