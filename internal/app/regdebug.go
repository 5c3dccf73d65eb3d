// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/motion_beacon/internal/bma400"
	"github.com/relabs-tech/motion_beacon/internal/bus"
	"github.com/relabs-tech/motion_beacon/internal/config"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// RegisterDebugSession holds WebSocket connection state for register
// debugging.
type RegisterDebugSession struct {
	Conn     *websocket.Conn
	dev      *bma400.Device
	gate     *bus.Gate
	writable []writeRange
}

// RegisterResponse is the message sent back for every action.
type RegisterResponse struct {
	Type        string                `json:"type"` // "register_data", "register_map", "status", "error"
	Address     string                `json:"addr,omitempty"`
	Value       string                `json:"value,omitempty"`
	Registers   map[string]string     `json:"registers,omitempty"` // for bulk read
	Timestamp   string                `json:"timestamp,omitempty"`
	Message     string                `json:"message,omitempty"`
	Status      string                `json:"status,omitempty"`
	RegisterMap []bma400.RegisterInfo `json:"register_map,omitempty"`
}

// RunRegisterDebug serves the register-debug WebSocket endpoint. It
// owns its own transport and gate; run it instead of the beacon, not
// next to it, since the sensor bus has a single owner.
func RunRegisterDebug() error {
	cfg := config.Get()
	if cfg.RegDebugListenAddr == "" {
		return fmt.Errorf("regdebug: REGDEBUG_LISTEN_ADDR is not configured")
	}

	writable, err := parseWriteRanges(cfg.RegDebugWriteRanges)
	if err != nil {
		return err
	}

	tr, err := bus.NewSPITransport(cfg.SPIDevice, cfg.PowerGatePin, cfg.SPISpeedHz)
	if err != nil {
		return err
	}
	gate := bus.NewGate(tr)
	dev := bma400.New(tr)

	if err := gate.Do(dev.Init); err != nil {
		return fmt.Errorf("regdebug: sensor probe: %w", err)
	}

	http.HandleFunc("/registers", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("regdebug: websocket upgrade error: %v", err)
			return
		}
		defer conn.Close()

		session := &RegisterDebugSession{Conn: conn, dev: dev, gate: gate, writable: writable}
		session.run()
	})

	log.Printf("regdebug: listening on %s", cfg.RegDebugListenAddr)
	return http.ListenAndServe(cfg.RegDebugListenAddr, nil)
}

func (s *RegisterDebugSession) run() {
	// Send the register map on connection.
	if err := s.Conn.WriteJSON(RegisterResponse{Type: "register_map", RegisterMap: bma400.RegisterMap()}); err != nil {
		log.Printf("regdebug: error sending register map: %v", err)
		return
	}

	for {
		var rawMsg map[string]interface{}
		if err := s.Conn.ReadJSON(&rawMsg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("regdebug: websocket error: %v", err)
			}
			return
		}

		action, ok := rawMsg["action"].(string)
		if !ok {
			s.sendError("missing or invalid action field")
			continue
		}

		switch action {
		case "get_map":
			s.Conn.WriteJSON(RegisterResponse{Type: "register_map", RegisterMap: bma400.RegisterMap()})
		case "read":
			s.handleRead(rawMsg)
		case "read_all":
			s.handleReadAll()
		case "write":
			s.handleWrite(rawMsg)
		case "init":
			s.handleInit()
		default:
			s.sendError(fmt.Sprintf("unknown action: %s", action))
		}
	}
}

func (s *RegisterDebugSession) handleRead(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	if addr == "" {
		s.sendError("missing addr field")
		return
	}
	addrByte, err := parseHexByte(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}

	var value byte
	err = s.gate.Do(func() error {
		raw, err := s.dev.ReadRegister(addrByte, 1)
		if err != nil {
			return err
		}
		value = raw[0]
		return nil
	})
	if err != nil {
		s.sendError(fmt.Sprintf("read error: %v", err))
		return
	}

	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Address:   addr,
		Value:     fmt.Sprintf("0x%02X", value),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *RegisterDebugSession) handleReadAll() {
	regMap := make(map[string]string)
	err := s.gate.Do(func() error {
		for _, info := range bma400.RegisterMap() {
			addr, err := parseHexByte(info.Address)
			if err != nil {
				continue
			}
			raw, err := s.dev.ReadRegister(addr, 1)
			if err != nil {
				return err
			}
			regMap[info.Address] = fmt.Sprintf("0x%02X", raw[0])
		}
		return nil
	})
	if err != nil {
		s.sendError(fmt.Sprintf("read all error: %v", err))
		return
	}

	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Registers: regMap,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *RegisterDebugSession) handleWrite(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	valueStr, _ := rawMsg["value"].(string)
	if addr == "" || valueStr == "" {
		s.sendError("missing addr or value field")
		return
	}

	addrByte, err := parseHexByte(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}
	valueByte, err := parseHexByte(valueStr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid value format: %s", valueStr))
		return
	}

	if !isRegisterWritable(addrByte, s.writable) {
		s.sendError(fmt.Sprintf("register 0x%02X not in allowed write ranges", addrByte))
		return
	}

	if err := s.gate.Do(func() error { return s.dev.WriteRegister(addrByte, valueByte) }); err != nil {
		s.sendError(fmt.Sprintf("write error: %v", err))
		return
	}

	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Address:   addr,
		Value:     valueStr,
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   "write successful",
	})
}

func (s *RegisterDebugSession) handleInit() {
	if err := s.gate.Do(s.dev.Init); err != nil {
		s.sendError(fmt.Sprintf("reinit error: %v", err))
		return
	}
	s.Conn.WriteJSON(RegisterResponse{
		Type:    "status",
		Status:  "initialized",
		Message: "sensor identity verified",
	})
}

func (s *RegisterDebugSession) sendError(message string) {
	s.Conn.WriteJSON(RegisterResponse{Type: "error", Message: message})
}

type writeRange struct {
	lo, hi byte
}

// parseWriteRanges parses ranges like "0x19-0x1B,0x7E,0x26-0x28". An
// empty spec means no writes are allowed.
func parseWriteRanges(spec string) ([]writeRange, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	var out []writeRange
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "-")
		loByte, err := parseHexByte(lo)
		if err != nil {
			return nil, fmt.Errorf("regdebug: invalid write range %q: %w", part, err)
		}
		hiByte := loByte
		if found {
			hiByte, err = parseHexByte(hi)
			if err != nil {
				return nil, fmt.Errorf("regdebug: invalid write range %q: %w", part, err)
			}
		}
		if hiByte < loByte {
			return nil, fmt.Errorf("regdebug: inverted write range %q", part)
		}
		out = append(out, writeRange{lo: loByte, hi: hiByte})
	}
	return out, nil
}

// isRegisterWritable checks if a register address is in the allowed
// write ranges.
func isRegisterWritable(addr byte, ranges []writeRange) bool {
	for _, r := range ranges {
		if addr >= r.lo && addr <= r.hi {
			return true
		}
	}
	return false
}

func parseHexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}
