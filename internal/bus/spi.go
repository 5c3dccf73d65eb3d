// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// powerUpSettle is how long the sensor rail is given to stabilize after
// the gate pin goes high. The BMA400 needs 1.5 ms from power-on to the
// first command.
const powerUpSettle = 2 * time.Millisecond

type spiTransport struct {
	port  spi.PortCloser
	conn  spi.Conn
	power gpio.PinOut
}

// NewSPITransport opens the SPI device and resolves the GPIO pin that
// gates the sensor's power rail. The transport starts suspended.
func NewSPITransport(spiDev, powerPin string, speedHz int64) (Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bus: periph host init: %w", err)
	}

	port, err := spireg.Open(spiDev)
	if err != nil {
		return nil, fmt.Errorf("bus: SPI open (%s): %w", spiDev, err)
	}

	conn, err := port.Connect(physic.Frequency(speedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("bus: SPI connect (%s): %w", spiDev, err)
	}

	pin := gpioreg.ByName(powerPin)
	if pin == nil {
		port.Close()
		return nil, fmt.Errorf("bus: power gate pin %q not found", powerPin)
	}

	t := &spiTransport{port: port, conn: conn, power: pin}
	if err := t.Power(false); err != nil {
		port.Close()
		return nil, err
	}
	log.Printf("bus: SPI transport on %s at %d Hz, power rail on %s", spiDev, speedHz, powerPin)
	return t, nil
}

func (t *spiTransport) Transceive(tx []byte, rxLen int) ([]byte, error) {
	n := len(tx)
	if rxLen > n {
		n = rxLen
	}
	w := make([]byte, n)
	copy(w, tx)
	r := make([]byte, n)
	if err := t.conn.Tx(w, r); err != nil {
		return nil, fmt.Errorf("%w: transceive: %v", ErrTransport, err)
	}
	return r[:rxLen], nil
}

func (t *spiTransport) Power(on bool) error {
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := t.power.Out(level); err != nil {
		return fmt.Errorf("%w: power rail %v: %v", ErrTransport, level, err)
	}
	if on {
		time.Sleep(powerUpSettle)
	}
	return nil
}
