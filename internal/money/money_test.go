package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.01, Round2(10.005), "half-cent rounds up under epsilon correction")
	assert.Equal(t, 10.0, Round2(10.004))
	assert.Equal(t, 2.6, Round2(2.6))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 25.0, Round2(24.999999999))

	// The classic binary-float trap: 0.1+0.2 != 0.3.
	assert.Equal(t, 0.3, Round2(0.1+0.2))
}

func TestRound2Idempotent(t *testing.T) {
	for _, v := range []float64{10.005, 19.99, 0.004999, 123.456, 2.675, 0.015} {
		once := Round2(v)
		assert.Equal(t, once, Round2(once), "Round2 must be idempotent for %v", v)
	}
}
