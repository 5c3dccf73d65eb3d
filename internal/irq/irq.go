// Package irq turns the sensor's interrupt pin into posts on the ready
// signal.
package irq

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/relabs-tech/motion_beacon/internal/ready"
)

// ParseEdge maps a configuration-file value to an edge polarity.
func ParseEdge(s string) (gpio.Edge, error) {
	switch s {
	case "rising":
		return gpio.RisingEdge, nil
	case "falling":
		return gpio.FallingEdge, nil
	}
	return gpio.NoEdge, fmt.Errorf("irq: unknown edge %q (want rising or falling)", s)
}

// Watch configures the interrupt pin for the given edge and starts the
// watcher goroutine. On every detected edge the watcher's only action
// is a non-blocking post to the signal: no bus access, no allocation,
// no work of unbounded cost. Edges that fire while a post is already
// pending coalesce inside the signal.
func Watch(pinName string, edge gpio.Edge, sig *ready.Signal) error {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return fmt.Errorf("irq: interrupt pin %q not found", pinName)
	}
	if err := pin.In(gpio.PullDown, edge); err != nil {
		return fmt.Errorf("irq: configure %s: %w", pinName, err)
	}
	log.Printf("irq: watching %s for %v edges", pinName, edge)

	go func() {
		for {
			// Block without timeout; a spurious wake just means an
			// extra coalesced post.
			pin.WaitForEdge(-1)
			sig.Post()
		}
	}()
	return nil
}
