// Package wireless implements the notification channel to the peer: a
// WebSocket endpoint the peer connects to and subscribes on, receiving
// each sample as an unacknowledged binary frame.
package wireless

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// ErrNotSubscribed is returned by Notify when the connected peer has
// not (or no longer) enabled notifications.
var ErrNotSubscribed = errors.New("wireless: peer not subscribed")

// Peer is one connected remote. Notifications are best-effort pushes;
// a Peer that vanishes mid-send just makes the send fail harmlessly.
type Peer struct {
	conn       *websocket.Conn
	remote     string
	subscribed atomic.Bool
	writeMu    sync.Mutex
}

// Remote is the peer's network address, for diagnostics.
func (p *Peer) Remote() string {
	return p.remote
}

// Subscribed reports whether the peer has enabled notifications.
func (p *Peer) Subscribed() bool {
	return p.subscribed.Load()
}
