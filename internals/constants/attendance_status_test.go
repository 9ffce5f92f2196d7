package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceStatusTable(t *testing.T) {
	cases := []struct {
		code     int
		label    string
		positive bool
		absent   bool
	}{
		{110, "Absent", false, true},
		{111, "Present", true, false},
		{112, "Late", true, false},
		{220, "Other Leave", false, true},
		{225, "Duty Leave", true, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, AttendanceStatusLabel(tc.code))
		assert.Equal(t, tc.positive, IsPositiveAttendance(tc.code))
		assert.Equal(t, tc.absent, IsAbsentAttendance(tc.code))
		assert.True(t, IsKnownAttendanceCode(tc.code))
	}
}

func TestUnknownAttendanceCode(t *testing.T) {
	assert.False(t, IsKnownAttendanceCode(999))
	assert.False(t, IsPositiveAttendance(999))
	assert.False(t, IsAbsentAttendance(999))
	assert.Equal(t, "Unknown", AttendanceStatusLabel(999))
}
