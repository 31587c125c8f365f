package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateFor(t *testing.T) {
	assert.Equal(t, 13.0, RateFor("CA", "ON"))
	assert.Equal(t, 5.0, RateFor("CA", "AB"))
	assert.Equal(t, 7.25, RateFor("US", "CA"))
}

func TestRateForNormalizesInput(t *testing.T) {
	assert.Equal(t, 13.0, RateFor("ca", "on"))
	assert.Equal(t, 13.0, RateFor(" CA ", " on "))
}

func TestRateForUnknownJurisdictionFailsOpen(t *testing.T) {
	assert.Equal(t, 0.0, RateFor("FR", "IDF"))
	assert.Equal(t, 0.0, RateFor("", ""))
	assert.Equal(t, 0.0, RateFor("CA", ""))
	assert.Equal(t, 0.0, RateFor("", "ON"))
}
