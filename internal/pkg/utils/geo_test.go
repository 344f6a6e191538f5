package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	assert.Equal(t, 0.0, CalculateHaversineDistance(12.9716, 77.5946, 12.9716, 77.5946))

	// One degree of latitude is ~111.2 km on a 6371 km sphere.
	d := CalculateHaversineDistance(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 5)

	// Symmetric.
	ab := CalculateHaversineDistance(19.0760, 72.8777, 28.7041, 77.1025)
	ba := CalculateHaversineDistance(28.7041, 77.1025, 19.0760, 72.8777)
	assert.InDelta(t, ab, ba, 1e-6)
	assert.InDelta(t, 1153000, ab, 5000)
}

func TestWithinRadius(t *testing.T) {
	// ~0.0009 degrees of latitude is ~100 m.
	inside, d := WithinRadius(12.0005, 77.0, 12.0, 77.0, 100)
	assert.True(t, inside)
	assert.InDelta(t, 56, d, 1)

	inside, d = WithinRadius(12.002, 77.0, 12.0, 77.0, 100)
	assert.False(t, inside)
	assert.InDelta(t, 222, d, 1)
}
