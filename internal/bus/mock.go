package bus

// MockTransport implements Transport for testing.
type MockTransport struct {
	Powered     bool
	PowerLog    []bool
	PowerOnErr  error
	PowerOffErr error

	TxLog         [][]byte
	RxQueue       [][]byte
	TransceiveErr error

	// UnpoweredTransceives counts transceives issued while the mock was
	// suspended; a correct caller never produces any.
	UnpoweredTransceives int
}

func (m *MockTransport) Transceive(tx []byte, rxLen int) ([]byte, error) {
	if !m.Powered {
		m.UnpoweredTransceives++
	}
	m.TxLog = append(m.TxLog, append([]byte(nil), tx...))
	if m.TransceiveErr != nil {
		return nil, m.TransceiveErr
	}
	out := make([]byte, rxLen)
	if len(m.RxQueue) > 0 {
		copy(out, m.RxQueue[0])
		m.RxQueue = m.RxQueue[1:]
	}
	return out, nil
}

func (m *MockTransport) Power(on bool) error {
	if on && m.PowerOnErr != nil {
		return m.PowerOnErr
	}
	if !on && m.PowerOffErr != nil {
		return m.PowerOffErr
	}
	m.Powered = on
	m.PowerLog = append(m.PowerLog, on)
	return nil
}
