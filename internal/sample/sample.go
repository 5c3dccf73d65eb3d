package sample

import (
	"encoding/binary"
	"fmt"
)

// PayloadSize is the length of one encoded acceleration record.
const PayloadSize = 6

// Sample is a single acceleration reading, one value per axis.
// A Sample is immutable once produced by a read cycle.
type Sample struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
	Z int16 `json:"z"`
}

// Encode serializes the sample as the notification payload sent to the
// peer: three signed 16-bit values, little-endian, in X, Y, Z order.
func (s Sample) Encode() []byte {
	b := make([]byte, PayloadSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(s.X))
	binary.LittleEndian.PutUint16(b[2:4], uint16(s.Y))
	binary.LittleEndian.PutUint16(b[4:6], uint16(s.Z))
	return b
}

// Decode is the peer-side inverse of Encode.
func Decode(b []byte) (Sample, error) {
	if len(b) != PayloadSize {
		return Sample{}, fmt.Errorf("sample: payload must be %d bytes, got %d", PayloadSize, len(b))
	}
	return Sample{
		X: int16(binary.LittleEndian.Uint16(b[0:2])),
		Y: int16(binary.LittleEndian.Uint16(b[2:4])),
		Z: int16(binary.LittleEndian.Uint16(b[4:6])),
	}, nil
}

func (s Sample) String() string {
	return fmt.Sprintf("x=%d y=%d z=%d", s.X, s.Y, s.Z)
}
