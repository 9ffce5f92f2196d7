package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampTargetPercentage(t *testing.T) {
	assert.InDelta(t, 75.0, ClampTargetPercentage(0), 1e-9)
	assert.InDelta(t, 75.0, ClampTargetPercentage(-10), 1e-9)
	assert.InDelta(t, 50.0, ClampTargetPercentage(30), 1e-9)
	assert.InDelta(t, 100.0, ClampTargetPercentage(120), 1e-9)
	assert.InDelta(t, 80.0, ClampTargetPercentage(80), 1e-9)
	assert.InDelta(t, 50.0, ClampTargetPercentage(50), 1e-9)
	assert.InDelta(t, 100.0, ClampTargetPercentage(100), 1e-9)
}
