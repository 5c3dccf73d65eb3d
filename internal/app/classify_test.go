package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_beacon/internal/sample"
)

func TestReadSampleCSV(t *testing.T) {
	in := "Timestamp,X,Y,Z\n" +
		"2026-08-31T10:00:00Z,100,-50,32760\n" +
		"2026-08-31T10:00:01Z,0,0,512\n"

	samples, err := readSampleCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, sample.Sample{X: 100, Y: -50, Z: 32760}, samples[0])
	assert.Equal(t, sample.Sample{X: 0, Y: 0, Z: 512}, samples[1])
}

func TestReadSampleCSVBadValue(t *testing.T) {
	in := "Timestamp,X,Y,Z\n" +
		"2026-08-31T10:00:00Z,100,oops,0\n"

	_, err := readSampleCSV(strings.NewReader(in))
	assert.Error(t, err)
}

func TestReadSampleCSVNoHeader(t *testing.T) {
	in := "2026-08-31T10:00:00Z,1,2,3\n"

	samples, err := readSampleCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, sample.Sample{X: 1, Y: 2, Z: 3}, samples[0])
}
