package bus

import (
	"fmt"
	"log"
)

// Gate gives its owner scoped, power-gated access to the transport: the
// bus is powered on only while a critical section is in flight, and the
// power-down always runs, on every exit path.
//
// Precondition: exactly one worker calls Do. The gate carries no lock of
// its own; the single-worker access pattern is the concurrency contract.
type Gate struct {
	tr Transport
}

func NewGate(tr Transport) *Gate {
	return &Gate{tr: tr}
}

// Do powers the transport on, runs fn, and powers the transport back
// off. If the power-up fails, fn does not run and the cycle is
// abandoned; the transport is left in whatever state the failed
// transition produced and the next Do re-attempts from scratch.
func (g *Gate) Do(fn func() error) error {
	if err := g.tr.Power(true); err != nil {
		return fmt.Errorf("bus: power up: %w", err)
	}
	defer func() {
		if err := g.tr.Power(false); err != nil {
			log.Printf("bus: power down failed: %v", err)
		}
	}()
	return fn()
}
