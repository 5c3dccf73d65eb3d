package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatePowersAroundCriticalSection(t *testing.T) {
	tr := &MockTransport{}
	gate := NewGate(tr)

	err := gate.Do(func() error {
		assert.True(t, tr.Powered, "critical section must run with the bus powered")
		_, err := tr.Transceive([]byte{0x01}, 2)
		return err
	})
	require.NoError(t, err)

	assert.False(t, tr.Powered, "bus must be suspended after the cycle")
	assert.Equal(t, []bool{true, false}, tr.PowerLog)
	assert.Zero(t, tr.UnpoweredTransceives)
}

func TestGateReleasesOnError(t *testing.T) {
	tr := &MockTransport{}
	gate := NewGate(tr)

	boom := errors.New("read failed")
	err := gate.Do(func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, tr.Powered, "power-down must run on the error path too")
}

func TestGateAbandonsCycleWhenPowerUpFails(t *testing.T) {
	tr := &MockTransport{PowerOnErr: ErrTransport}
	gate := NewGate(tr)

	ran := false
	err := gate.Do(func() error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, ran, "the critical section must not run when power-up fails")
}

func TestGateBalancedAcrossCycles(t *testing.T) {
	tr := &MockTransport{}
	gate := NewGate(tr)

	fail := errors.New("transient")
	_ = gate.Do(func() error { return fail })
	_ = gate.Do(func() error { return nil })
	_ = gate.Do(func() error { return fail })

	var ups, downs int
	for _, on := range tr.PowerLog {
		if on {
			ups++
		} else {
			downs++
		}
	}
	assert.Equal(t, ups, downs, "acquire/release counts must balance after every cycle")
	assert.False(t, tr.Powered)
}
