// Package bus provides the sensor transport and the power gate that
// serializes exclusive, powered access to it.
package bus

import "errors"

// ErrTransport marks any failure of the underlying transceive or power
// primitive. Callers match it with errors.Is.
var ErrTransport = errors.New("bus: transport error")

// Transport is a synchronous full-duplex register transport.
type Transport interface {
	// Transceive clocks tx out while receiving rxLen bytes, starting at
	// the first clock of the transaction. The transaction length is
	// max(len(tx), rxLen). The returned slice has exactly rxLen bytes;
	// on error the contents of any buffer must not be interpreted.
	Transceive(tx []byte, rxLen int) ([]byte, error)

	// Power transitions the transport between suspended and active.
	Power(on bool) error
}
