// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"

	"github.com/relabs-tech/motion_beacon/internal/bma400"
	"github.com/relabs-tech/motion_beacon/internal/bus"
	"github.com/relabs-tech/motion_beacon/internal/config"
	"github.com/relabs-tech/motion_beacon/internal/irq"
	"github.com/relabs-tech/motion_beacon/internal/pipeline"
	"github.com/relabs-tech/motion_beacon/internal/ready"
	"github.com/relabs-tech/motion_beacon/internal/wireless"
)

// RunBeacon brings the device to steady state and runs the sampling
// worker forever: configure the sensor, start advertising, watch the
// interrupt pin, then loop on read-and-deliver cycles.
func RunBeacon() error {
	cfg := config.Get()

	tr, err := bus.NewSPITransport(cfg.SPIDevice, cfg.PowerGatePin, cfg.SPISpeedHz)
	if err != nil {
		return err
	}
	gate := bus.NewGate(tr)
	dev := bma400.New(tr)

	mode, err := bma400.ParseMode(cfg.SensorMode)
	if err != nil {
		return err
	}
	scfg, err := sensorConfig(cfg)
	if err != nil {
		return err
	}

	// A configuration failure here is fatal: the process never reaches
	// steady-state operation with a half-configured sensor.
	err = gate.Do(func() error {
		if err := dev.Init(); err != nil {
			return err
		}
		return dev.Configure(mode, scfg)
	})
	if err != nil {
		return fmt.Errorf("beacon: sensor start-up: %w", err)
	}
	log.Printf("beacon: sensor configured, mode=%s odr=%dHz range=±%dg",
		mode, cfg.SensorODRHz, cfg.SensorRangeG)

	tracker := wireless.NewTracker()
	stack := wireless.NewServer(cfg.ListenAddr, tracker.OnConnect, tracker.OnDisconnect)
	if err := stack.Advertise(cfg.DeviceName); err != nil {
		return err
	}

	signal := ready.New()
	edge, err := irq.ParseEdge(cfg.IntEdge)
	if err != nil {
		return err
	}
	if err := irq.Watch(cfg.IntPin, edge, signal); err != nil {
		return err
	}

	log.Printf("beacon: %s entering steady state", cfg.DeviceName)
	pipeline.New(signal, gate, dev, tracker, stack).Run()
	return nil
}

// sensorConfig maps the file configuration onto register field values.
func sensorConfig(cfg *config.Config) (bma400.SensorConfig, error) {
	odr, err := odrCode(cfg.SensorODRHz)
	if err != nil {
		return bma400.SensorConfig{}, err
	}
	rng, err := rangeCode(cfg.SensorRangeG)
	if err != nil {
		return bma400.SensorConfig{}, err
	}
	return bma400.SensorConfig{
		ODR:               odr,
		Range:             rng,
		DataSource:        cfg.SensorDataSource,
		ActivityThreshold: cfg.ActivityThreshold,
		ActivityDuration:  uint16(cfg.ActivityDuration),
		WatermarkFrames:   cfg.FIFOWatermarkFrames,
	}, nil
}

func odrCode(hz int) (byte, error) {
	switch hz {
	case 12:
		return bma400.ODR12Hz, nil
	case 25:
		return bma400.ODR25Hz, nil
	case 50:
		return bma400.ODR50Hz, nil
	case 100:
		return bma400.ODR100Hz, nil
	case 200:
		return bma400.ODR200Hz, nil
	case 400:
		return bma400.ODR400Hz, nil
	case 800:
		return bma400.ODR800Hz, nil
	}
	return 0, fmt.Errorf("beacon: unsupported ODR %d Hz", hz)
}

func rangeCode(g int) (byte, error) {
	switch g {
	case 2:
		return bma400.Range2G, nil
	case 4:
		return bma400.Range4G, nil
	case 8:
		return bma400.Range8G, nil
	case 16:
		return bma400.Range16G, nil
	}
	return 0, fmt.Errorf("beacon: unsupported range ±%dg", g)
}
