// Package ready implements the single-slot signal that hands work from
// the interrupt side to the sampling worker.
package ready

// Signal is a notification slot with a maximum outstanding count of one.
// Posts that arrive while a post is already pending are coalesced, not
// queued, so the worker observes at most one wake per drain.
type Signal struct {
	c chan struct{}
}

func New() *Signal {
	return &Signal{c: make(chan struct{}, 1)}
}

// Post marks the signal pending. It never blocks and never allocates,
// so it is safe to call from an edge-watcher callback.
func (s *Signal) Post() {
	select {
	case s.c <- struct{}{}:
	default:
	}
}

// Wait blocks until the signal is pending, then drains it.
func (s *Signal) Wait() {
	<-s.c
}
