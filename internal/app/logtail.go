package app

import (
	"bufio"
	"log"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/motion_beacon/internal/config"
)

// RunLogTail opens the device's debug UART and echoes its log lines to
// stdout. Handy when the beacon runs headless and the only visibility
// is the serial console.
func RunLogTail() error {
	cfg := config.Get()

	serialOpts := serial.OpenOptions{
		PortName:              cfg.LogSerialPort,
		BaudRate:              cfg.LogBaudRate,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return err
	}
	defer port.Close()
	log.Printf("logtail: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	reader := bufio.NewReader(port)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("logtail: read error: %v", err)
			return err
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		log.Printf("[device] %s", line)
	}
}
