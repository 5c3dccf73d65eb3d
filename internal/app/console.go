package app

import (
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/motion_beacon/internal/config"
	"github.com/relabs-tech/motion_beacon/internal/sample"
)

// RunConsole dials the device, subscribes to notifications, and prints
// each decoded sample.
func RunConsole() error {
	cfg := config.Get()
	if cfg.DeviceWSURL == "" {
		return fmt.Errorf("console: DEVICE_WS_URL is not configured")
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.DeviceWSURL, nil)
	if err != nil {
		return fmt.Errorf("console: dial %s: %w", cfg.DeviceWSURL, err)
	}
	defer conn.Close()
	log.Printf("console: connected to %s", cfg.DeviceWSURL)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("subscribe")); err != nil {
		return fmt.Errorf("console: subscribe: %w", err)
	}
	log.Println("console: subscribed to accel notifications")

	for {
		mt, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("console: read: %w", err)
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		s, err := sample.Decode(payload)
		if err != nil {
			log.Printf("console: bad payload: %v", err)
			continue
		}
		fmt.Printf("[ACC]  X=%6d  Y=%6d  Z=%6d\n", s.X, s.Y, s.Z)
	}
}
