package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownPayload(t *testing.T) {
	s := Sample{X: 100, Y: -50, Z: 32760}
	assert.Equal(t, []byte{0x64, 0x00, 0xCE, 0xFF, 0x78, 0x7F}, s.Encode())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Sample{
		{},
		{X: 1, Y: 2, Z: 3},
		{X: -1, Y: -2, Z: -3},
		{X: 32767, Y: -32768, Z: 0},
		{X: 100, Y: -50, Z: 32760},
	}
	for _, want := range cases {
		got, err := Decode(want.Encode())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = Decode(make([]byte, 8))
	assert.Error(t, err)
}
