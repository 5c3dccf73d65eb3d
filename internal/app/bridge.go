package app

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/motion_beacon/internal/config"
	"github.com/relabs-tech/motion_beacon/internal/sample"
)

// RunBridge subscribes to the device as a notification peer and
// republishes each decoded sample as JSON on an MQTT topic.
func RunBridge() error {
	cfg := config.Get()
	if cfg.DeviceWSURL == "" {
		return fmt.Errorf("bridge: DEVICE_WS_URL is not configured")
	}
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("bridge: MQTT_BROKER is not configured")
	}

	// ---- 1) Connect to MQTT broker ----
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDBridge)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("bridge: connected to MQTT broker at %s", cfg.MQTTBroker)

	// ---- 2) Attach to the device as a notification peer ----
	conn, _, err := websocket.DefaultDialer.Dial(cfg.DeviceWSURL, nil)
	if err != nil {
		return fmt.Errorf("bridge: dial %s: %w", cfg.DeviceWSURL, err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("subscribe")); err != nil {
		return fmt.Errorf("bridge: subscribe: %w", err)
	}
	log.Printf("bridge: subscribed to %s, republishing on %s", cfg.DeviceWSURL, cfg.MQTTTopicAccel)

	for {
		mt, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("bridge: device read: %w", err)
		}
		if mt != websocket.BinaryMessage {
			continue
		}

		s, err := sample.Decode(raw)
		if err != nil {
			log.Printf("bridge: bad payload: %v", err)
			continue
		}

		payload, err := json.Marshal(s)
		if err != nil {
			log.Printf("bridge: json marshal error: %v", err)
			continue
		}
		if token := client.Publish(cfg.MQTTTopicAccel, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("bridge: MQTT publish error: %v", token.Error())
		}
	}
}
