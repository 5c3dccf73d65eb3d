// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package bma400 implements the BMA400 register protocol on top of an
// abstract full-duplex transport.
package bma400

import (
	"errors"
	"fmt"

	"github.com/relabs-tech/motion_beacon/internal/bus"
	"github.com/relabs-tech/motion_beacon/internal/sample"
)

// ErrConfig marks a failed register read/modify/write sequence during
// configuration. Configuration failures are fatal to start-up.
var ErrConfig = errors.New("bma400: configuration failed")

// Device drives one BMA400 over a transport. All methods assume the
// transport is powered; the caller brackets them with the bus gate.
// Device is not safe for concurrent use: the single sampling worker owns
// it for the duration of each cycle.
type Device struct {
	tr   bus.Transport
	cfg  SensorConfig
	mode Mode // currently configured mode, ModeNone until Configure
}

func New(tr bus.Transport) *Device {
	return &Device{tr: tr, mode: ModeNone}
}

// Init verifies the sensor identity.
func (d *Device) Init() error {
	id, err := d.readRegister(RegChipID, 1)
	if err != nil {
		return fmt.Errorf("bma400: read chip id: %w", err)
	}
	if id[0] != ChipID {
		return fmt.Errorf("bma400: unexpected chip id 0x%02X (want 0x%02X)", id[0], ChipID)
	}
	return nil
}

// ReadRegister reads n bytes starting at addr.
//
// The transaction clocks out the 1-byte address and receives n+1 bytes;
// byte 0 of the response is the dummy byte produced while the address
// latches and is discarded. On error no data is returned: a partially
// filled buffer must never be interpreted as a real reading.
func (d *Device) ReadRegister(addr byte, n int) ([]byte, error) {
	return d.readRegister(addr, n)
}

func (d *Device) readRegister(addr byte, n int) ([]byte, error) {
	rx, err := d.tr.Transceive([]byte{addr | spiReadBit}, n+1)
	if err != nil {
		return nil, fmt.Errorf("bma400: read reg 0x%02X: %w", addr, err)
	}
	return rx[1:], nil
}

// WriteRegister writes a single byte. Multi-byte writes are not part of
// this adapter's framing.
func (d *Device) WriteRegister(addr, value byte) error {
	if _, err := d.tr.Transceive([]byte{addr &^ spiReadBit, value}, 0); err != nil {
		return fmt.Errorf("bma400: write reg 0x%02X: %w", addr, err)
	}
	return nil
}

// updateRegister does a read-modify-write of the bits selected by mask.
func (d *Device) updateRegister(addr, mask, value byte) error {
	cur, err := d.readRegister(addr, 1)
	if err != nil {
		return err
	}
	next := cur[0]&^mask | value&mask
	return d.WriteRegister(addr, next)
}

// ReadSample reads one acceleration sample. The data registers hold
// 12-bit two's-complement values, LSB first per axis.
func (d *Device) ReadSample() (sample.Sample, error) {
	raw, err := d.readRegister(RegAccXLSB, 6)
	if err != nil {
		return sample.Sample{}, fmt.Errorf("bma400: read sample: %w", err)
	}
	return sample.Sample{
		X: signExtend12(raw[0], raw[1]),
		Y: signExtend12(raw[2], raw[3]),
		Z: signExtend12(raw[4], raw[5]),
	}, nil
}

func signExtend12(lsb, msb byte) int16 {
	v := int16(uint16(lsb) | uint16(msb&0x0F)<<8)
	if v > 2047 {
		v -= 4096
	}
	return v
}

// Mode reports the currently configured mode.
func (d *Device) Mode() Mode {
	return d.mode
}
