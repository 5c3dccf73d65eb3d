package irq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio"
)

func TestParseEdge(t *testing.T) {
	e, err := ParseEdge("rising")
	assert.NoError(t, err)
	assert.Equal(t, gpio.RisingEdge, e)

	e, err = ParseEdge("falling")
	assert.NoError(t, err)
	assert.Equal(t, gpio.FallingEdge, e)

	_, err = ParseEdge("level")
	assert.Error(t, err)
}
