package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostclass_backend/internals/helpers/ezygo"
)

func TestNormalize_OrdersAndFlattens(t *testing.T) {
	raw := &ezygo.AttendanceReport{
		Courses: map[string]ezygo.Course{
			"4021": {ID: 4021, Code: "CS301", Name: "Data Structures"},
			"4022": {ID: 4022, Code: "CS302", Name: "Operating Systems"},
		},
		Report: map[string]map[string]ezygo.AttendanceSlot{
			"2026-03-15": {
				"1": {Course: 4022, Attendance: 110},
			},
			"2026-03-14": {
				"2": {Course: 4021, Attendance: 111},
				"1": {Course: 4021, Attendance: 112},
			},
		},
	}

	report := Normalize(raw)

	require.Len(t, report.Courses, 2)
	assert.Equal(t, 4021, report.Courses[0].CourseID)
	assert.Equal(t, "Data Structures", report.Courses[0].Name)

	require.Len(t, report.Sessions, 3)
	// dates ascending, sessions ascending within a date
	assert.Equal(t, "2026-03-14", report.Sessions[0].Date)
	assert.Equal(t, "1", report.Sessions[0].Session)
	assert.Equal(t, 112, report.Sessions[0].Code)
	assert.Equal(t, "2026-03-14", report.Sessions[1].Date)
	assert.Equal(t, "2", report.Sessions[1].Session)
	assert.Equal(t, "2026-03-15", report.Sessions[2].Date)
	assert.Equal(t, 4022, report.Sessions[2].CourseID)
}

func TestNormalize_CourseIDFromMapKey(t *testing.T) {
	raw := &ezygo.AttendanceReport{
		Courses: map[string]ezygo.Course{
			"4021": {Code: "CS301", Name: "Data Structures"},
		},
	}

	report := Normalize(raw)
	require.Len(t, report.Courses, 1)
	assert.Equal(t, 4021, report.Courses[0].CourseID)
}

func TestNormalize_Empty(t *testing.T) {
	report := Normalize(&ezygo.AttendanceReport{})
	assert.Empty(t, report.Courses)
	assert.Empty(t, report.Sessions)
	assert.False(t, report.FromCache)
}
