// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package wireless

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// NotifyPath is the WebSocket endpoint the peer dials.
const NotifyPath = "/accel"

// Server is the WebSocket-backed wireless stack. It accepts a single
// peer at a time; further connection attempts are rejected until the
// current peer disconnects.
type Server struct {
	addr         string
	name         string
	onConnect    func(*Peer)
	onDisconnect func(error)
	upgrader     websocket.Upgrader

	mu   sync.Mutex
	peer *Peer
}

// NewServer builds the stack. The callbacks fire from the stack's own
// goroutines when a peer attaches or goes away; a nil callback is
// skipped.
func NewServer(addr string, onConnect func(*Peer), onDisconnect func(error)) *Server {
	return &Server{
		addr:         addr,
		onConnect:    onConnect,
		onDisconnect: onDisconnect,
		upgrader:     websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler exposes the notification endpoint for serving.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(NotifyPath, s.handleWS)
	return mux
}

// Advertise binds the listen address under the given device name and
// starts accepting peers in the background.
func (s *Server) Advertise(name string) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("wireless: listen %s: %w", s.addr, err)
	}
	s.name = name
	log.Printf("wireless: advertising %q on ws://%s%s", name, ln.Addr(), NotifyPath)

	go func() {
		if err := http.Serve(ln, s.Handler()); err != nil {
			log.Printf("wireless: server stopped: %v", err)
		}
	}()
	return nil
}

// Notify pushes a payload to the peer. It fails when the peer has not
// subscribed or when the write itself fails; either way the payload is
// gone, there is no retry at this layer.
func (s *Server) Notify(p *Peer, payload []byte) error {
	if p == nil || !p.subscribed.Load() {
		return ErrNotSubscribed
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if err := p.conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		return fmt.Errorf("wireless: notify: %w", err)
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	busy := s.peer != nil
	s.mu.Unlock()
	if busy {
		http.Error(w, "peer already connected", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("wireless: upgrade failed: %v", err)
		return
	}

	p := &Peer{conn: conn, remote: conn.RemoteAddr().String()}
	s.mu.Lock()
	s.peer = p
	s.mu.Unlock()

	log.Printf("wireless: peer %s connected", p.remote)
	if s.onConnect != nil {
		s.onConnect(p)
	}
	go s.readLoop(p)
}

// readLoop owns the peer's receive side: subscription control frames
// come in here, and its termination is the disconnect event.
func (s *Server) readLoop(p *Peer) {
	var reason error
	for {
		mt, msg, err := p.conn.ReadMessage()
		if err != nil {
			reason = err
			break
		}
		if mt != websocket.TextMessage {
			continue
		}
		switch string(msg) {
		case "subscribe":
			p.subscribed.Store(true)
			log.Printf("wireless: notifications enabled for %s", p.remote)
		case "unsubscribe":
			p.subscribed.Store(false)
			log.Printf("wireless: notifications disabled for %s", p.remote)
		}
	}

	p.conn.Close()
	s.mu.Lock()
	if s.peer == p {
		s.peer = nil
	}
	s.mu.Unlock()

	log.Printf("wireless: peer %s disconnected: %v", p.remote, reason)
	if s.onDisconnect != nil {
		s.onDisconnect(reason)
	}
}
