// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bma400

import "fmt"

// Mode selects one of the closed set of sensor configurations. Modes
// are mutually exclusive: each enables exactly one interrupt category,
// and configuring a new mode first disables the previous one's
// interrupt source so the edge pin never carries stacked causes.
type Mode int

const (
	ModeNone Mode = iota
	// ModeLowPower: continuous low-power sampling, data-ready interrupt.
	ModeLowPower
	// ModeFifoWatermark: buffered frames, interrupt at the watermark.
	ModeFifoWatermark
	// ModeActivity: generic interrupt 1 as an activity threshold.
	ModeActivity
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeLowPower:
		return "lowpower"
	case ModeFifoWatermark:
		return "fifo_watermark"
	case ModeActivity:
		return "activity"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a configuration-file value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "lowpower":
		return ModeLowPower, nil
	case "fifo_watermark":
		return ModeFifoWatermark, nil
	case "activity":
		return ModeActivity, nil
	}
	return ModeNone, fmt.Errorf("bma400: unknown sensor mode %q", s)
}

// interruptEnableBit is the single RegIntConfig0 bit a mode owns.
func (m Mode) interruptEnableBit() byte {
	switch m {
	case ModeLowPower:
		return IntDataReadyEn
	case ModeFifoWatermark:
		return IntFifoWatermarkEn
	case ModeActivity:
		return IntGen1En
	}
	return 0
}

func (m Mode) powerMode() byte {
	if m == ModeLowPower {
		return PowerModeLowPower
	}
	return PowerModeNormal
}

// SensorConfig is the compiled-in sensor configuration, applied once at
// start-up and read-only afterwards.
type SensorConfig struct {
	ODR        byte // ODR25Hz etc.
	Range      byte // Range4G etc.
	DataSource byte // DataSrcFilt1 etc.

	// Activity mode.
	ActivityThreshold byte
	ActivityDuration  uint16

	// FIFO watermark mode, in XYZ frames.
	WatermarkFrames int
}

// Configure applies one named mode: read current config, mutate the
// relevant fields, write back, set the power mode, enable the mode's
// interrupt source. Any register failure aborts the sequence.
func (d *Device) Configure(mode Mode, cfg SensorConfig) error {
	if mode == ModeNone {
		return fmt.Errorf("%w: no mode selected", ErrConfig)
	}

	if err := d.updateRegister(RegAccConfig1, odrMask|rangeMask, cfg.ODR|cfg.Range<<rangeShift); err != nil {
		return configErr("set ODR/range", err)
	}
	if err := d.updateRegister(RegAccConfig2, dataSrcMask, cfg.DataSource<<dataSrcShift); err != nil {
		return configErr("set data source", err)
	}

	// Mutual exclusion: retire the previous mode's interrupt before the
	// new one is armed.
	if prev := d.mode.interruptEnableBit(); prev != 0 && d.mode != mode {
		if err := d.updateRegister(RegIntConfig0, prev, 0); err != nil {
			return configErr("disable previous interrupt", err)
		}
	}

	var err error
	switch mode {
	case ModeLowPower:
		err = d.configureLowPower()
	case ModeFifoWatermark:
		err = d.configureFifoWatermark(cfg)
	case ModeActivity:
		err = d.configureActivity(cfg)
	}
	if err != nil {
		return err
	}

	if err := d.updateRegister(RegAccConfig0, powerModeMask, mode.powerMode()); err != nil {
		return configErr("set power mode", err)
	}

	bit := mode.interruptEnableBit()
	if err := d.updateRegister(RegInt1Map, bit, bit); err != nil {
		return configErr("map interrupt to INT1", err)
	}
	if err := d.updateRegister(RegIntConfig0, bit, bit); err != nil {
		return configErr("enable interrupt", err)
	}

	d.mode = mode
	d.cfg = cfg
	return nil
}

func (d *Device) configureLowPower() error {
	// OSR setting 0 keeps the low-power oscillator at its cheapest.
	if err := d.updateRegister(RegAccConfig0, 0x60, osrLowPowerSetting0); err != nil {
		return configErr("set low-power OSR", err)
	}
	return nil
}

func (d *Device) configureFifoWatermark(cfg SensorConfig) error {
	frames := byte(FifoAutoFlush | Fifo8BitEn | FifoXEn | FifoYEn | FifoZEn)
	if err := d.WriteRegister(RegFifoConfig0, frames); err != nil {
		return configErr("set FIFO frame layout", err)
	}
	watermark := cfg.WatermarkFrames * FifoFrameBytes
	if err := d.WriteRegister(RegFifoConfig1, byte(watermark&0xFF)); err != nil {
		return configErr("set FIFO watermark low", err)
	}
	if err := d.WriteRegister(RegFifoConfig2, byte(watermark>>8)&0x07); err != nil {
		return configErr("set FIFO watermark high", err)
	}
	return nil
}

func (d *Device) configureActivity(cfg SensorConfig) error {
	if err := d.WriteRegister(RegGen1IntConfig0, Gen1AxesXYZEn|Gen1DataSrcFilt2|Gen1RefUpdateEvery|Gen1Hyst48mg); err != nil {
		return configErr("set activity axes", err)
	}
	if err := d.WriteRegister(RegGen1IntConfig1, Gen1CriterionActivity|Gen1CombAnyAxis); err != nil {
		return configErr("set activity criterion", err)
	}
	if err := d.WriteRegister(RegGen1IntConfig2, cfg.ActivityThreshold); err != nil {
		return configErr("set activity threshold", err)
	}
	if err := d.WriteRegister(RegGen1IntConfig3, byte(cfg.ActivityDuration>>8)); err != nil {
		return configErr("set activity duration MSB", err)
	}
	if err := d.WriteRegister(RegGen1IntConfig4, byte(cfg.ActivityDuration&0xFF)); err != nil {
		return configErr("set activity duration LSB", err)
	}
	return nil
}

func configErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrConfig, op, err)
}
