package wireless

import "sync/atomic"

// Tracker holds the process-wide connection state: nil when
// disconnected, the current peer otherwise.
//
// It is written only by the stack's connect/disconnect callbacks and
// read only by the sampling worker. The atomic pointer guarantees the
// reader always observes a whole peer reference, never a partial
// update; no further locking is needed for this single-writer,
// single-reader handoff.
type Tracker struct {
	peer atomic.Pointer[Peer]
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// OnConnect is installed as the stack's connect callback.
func (t *Tracker) OnConnect(p *Peer) {
	t.peer.Store(p)
}

// OnDisconnect is installed as the stack's disconnect callback. Any
// held peer reference is released.
func (t *Tracker) OnDisconnect(reason error) {
	t.peer.Store(nil)
}

// Current returns the connected peer, or nil when disconnected.
func (t *Tracker) Current() *Peer {
	return t.peer.Load()
}
