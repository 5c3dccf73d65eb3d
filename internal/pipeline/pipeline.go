// Package pipeline runs the interrupt-to-delivery worker: wait for the
// ready signal, read one sample under the powered bus gate, relay it to
// the connected peer.
package pipeline

import (
	"log"

	"github.com/relabs-tech/motion_beacon/internal/bus"
	"github.com/relabs-tech/motion_beacon/internal/ready"
	"github.com/relabs-tech/motion_beacon/internal/sample"
	"github.com/relabs-tech/motion_beacon/internal/wireless"
)

// Sampler reads one acceleration sample from the sensor. Calls are made
// only while the bus gate holds the transport powered.
type Sampler interface {
	ReadSample() (sample.Sample, error)
}

// Notifier pushes an encoded sample to a peer.
type Notifier interface {
	Notify(p *wireless.Peer, payload []byte) error
}

// Pipeline is the single worker that owns the read-and-deliver cycle.
// Exactly one Run loop may exist per sensor; that single-worker rule is
// what lets the bus gate and the sensor configuration go unlocked.
type Pipeline struct {
	signal *ready.Signal
	gate   *bus.Gate
	dev    Sampler
	conns  *wireless.Tracker
	stack  Notifier
}

func New(signal *ready.Signal, gate *bus.Gate, dev Sampler, conns *wireless.Tracker, stack Notifier) *Pipeline {
	return &Pipeline{signal: signal, gate: gate, dev: dev, conns: conns, stack: stack}
}

// Run executes read-and-deliver cycles for the lifetime of the process.
// There is no shutdown path; the loop is the process.
func (p *Pipeline) Run() {
	for {
		p.cycle()
	}
}

// cycle is one pass of the state machine: Idle until the signal fires,
// BusActive while the sample is read, Delivering if the read succeeded.
func (p *Pipeline) cycle() {
	p.signal.Wait()

	var s sample.Sample
	err := p.gate.Do(func() error {
		var rerr error
		s, rerr = p.dev.ReadSample()
		return rerr
	})
	if err != nil {
		// Abandon the cycle; the bus gate has already released. The
		// next signal starts a fresh cycle.
		log.Printf("pipeline: read cycle abandoned: %v", err)
		return
	}

	// The bus is released before the radio is touched, so the two
	// peripherals are never held at once.
	peer := p.conns.Current()
	if peer == nil {
		// No peer: the sample is dropped silently, no queue, no retry.
		return
	}
	if err := p.stack.Notify(peer, s.Encode()); err != nil {
		// Includes a disconnect racing the Current() check above; the
		// send fails harmlessly and the sample is dropped.
		log.Printf("pipeline: notify failed, sample dropped: %v", err)
	}
}
