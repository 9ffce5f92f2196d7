package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAttendance_InvalidInputReturnsZeroResult(t *testing.T) {
	cases := []struct {
		name           string
		present, total float64
	}{
		{"zero total", 10, 0},
		{"negative total", 10, -5},
		{"negative present", -1, 20},
		{"present above total", 25, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateAttendance(tc.present, tc.total, 75)
			assert.Equal(t, 0, got.CanBunk)
			assert.Equal(t, 0, got.RequiredToAttend)
			assert.False(t, got.IsExact)
			assert.False(t, got.IsBorderline)
			assert.InDelta(t, 75.0, got.TargetPercentage, 1e-9)
		})
	}
}

func TestCalculateAttendance_TargetSanitation(t *testing.T) {
	assert.InDelta(t, 75.0, CalculateAttendance(10, 20, math.NaN()).TargetPercentage, 1e-9)
	assert.InDelta(t, 75.0, CalculateAttendance(10, 20, math.Inf(1)).TargetPercentage, 1e-9)
	assert.InDelta(t, 1.0, CalculateAttendance(10, 20, -30).TargetPercentage, 1e-9)
	assert.InDelta(t, 100.0, CalculateAttendance(10, 20, 150).TargetPercentage, 1e-9)
}

func TestCalculateAttendance_ExactMatch(t *testing.T) {
	got := CalculateAttendance(75, 100, 75)
	assert.True(t, got.IsExact)
	assert.Equal(t, 0, got.CanBunk)
	assert.Equal(t, 0, got.RequiredToAttend)
	assert.False(t, got.IsBorderline)
}

func TestCalculateAttendance_BelowTarget(t *testing.T) {
	got := CalculateAttendance(60, 100, 75)
	require.Equal(t, 60, got.RequiredToAttend)
	assert.Equal(t, 0, got.CanBunk)
	assert.False(t, got.IsExact)

	// Attending the computed number of classes actually reaches the target.
	present, total := 60.0+float64(got.RequiredToAttend), 100.0+float64(got.RequiredToAttend)
	assert.GreaterOrEqual(t, present/total*100, 75.0)
}

func TestCalculateAttendance_TargetHundredRequiresEverything(t *testing.T) {
	got := CalculateAttendance(60, 100, 100)
	assert.Equal(t, 40, got.RequiredToAttend)
	assert.Equal(t, 0, got.CanBunk)
}

func TestCalculateAttendance_AboveTarget(t *testing.T) {
	got := CalculateAttendance(90, 100, 75)
	assert.Equal(t, 20, got.CanBunk)
	assert.Equal(t, 0, got.RequiredToAttend)
	assert.False(t, got.IsBorderline)

	// Skipping the computed number of classes stays at or above target.
	total := 100.0 + float64(got.CanBunk)
	assert.GreaterOrEqual(t, 90.0/total*100, 75.0)
	// One more skip would drop below it.
	assert.Less(t, 90.0/(total+1)*100, 75.0)
}

func TestCalculateAttendance_Borderline(t *testing.T) {
	got := CalculateAttendance(75.5, 100, 75)
	assert.True(t, got.IsBorderline)
	assert.False(t, got.IsExact)
	assert.Equal(t, 0, got.CanBunk)

	// bunkableExact ~1.33 is real headroom, not borderline.
	got = CalculateAttendance(76, 100, 75)
	assert.False(t, got.IsBorderline)
	assert.Equal(t, 1, got.CanBunk)
}

func TestCalculateAttendance_Idempotent(t *testing.T) {
	first := CalculateAttendance(83, 120, 80)
	second := CalculateAttendance(83, 120, 80)
	assert.Equal(t, first, second)
}
