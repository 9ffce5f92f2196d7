package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const courseDSA = 4021

func officialWeek() []OfficialSession {
	return []OfficialSession{
		{CourseID: courseDSA, Date: "2026-08-24", Session: "1st Hour", Code: 111},
		{CourseID: courseDSA, Date: "2026-08-25", Session: "3rd Hour", Code: 110},
		{CourseID: courseDSA, Date: "2026-08-26", Session: "1st Hour", Code: 225},
		{CourseID: 5110, Date: "2026-08-24", Session: "2nd Hour", Code: 111},
	}
}

func TestReconcileCourse_EmptyInputsYieldZeroStats(t *testing.T) {
	got := ReconcileCourse(nil, nil, courseDSA)
	assert.Equal(t, ReconciledStats{CourseID: courseDSA}, got)
}

func TestReconcileCourse_OfficialOnly(t *testing.T) {
	got := ReconcileCourse(officialWeek(), nil, courseDSA)
	// 111 present, 110 absent, 225 duty leave counts present.
	assert.Equal(t, 2, got.Present)
	assert.Equal(t, 1, got.Absent)
	assert.Equal(t, 3, got.Total)
	assert.InDelta(t, 66.666, got.Percentage, 0.001)
	// Other course's session never leaks in.
	assert.Equal(t, got.Present+got.Absent, got.Total)
}

func TestReconcileCourse_CorrectionOverridesNotAdds(t *testing.T) {
	tracked := []TrackedRecord{{
		CourseID: courseDSA, Date: "2026-08-25", Session: "3rd Hour",
		Status: TrackedStatusCorrection, Code: 111,
	}}
	got := ReconcileCourse(officialWeek(), tracked, courseDSA)
	assert.Equal(t, 3, got.Total, "corrected slot must still count once")
	assert.Equal(t, 3, got.Present)
	assert.Equal(t, 0, got.Absent)
}

func TestReconcileCourse_ExtraAddsExactlyOne(t *testing.T) {
	base := ReconcileCourse(officialWeek(), nil, courseDSA)
	tracked := []TrackedRecord{{
		CourseID: courseDSA, Date: "2026-08-27", Session: "4th Hour",
		Status: TrackedStatusExtra, Code: 111,
	}}
	got := ReconcileCourse(officialWeek(), tracked, courseDSA)
	assert.Equal(t, base.Total+1, got.Total)
	assert.Equal(t, base.Present+1, got.Present)
}

func TestReconcileCourse_OrphanCorrectionIsDropped(t *testing.T) {
	tracked := []TrackedRecord{{
		CourseID: courseDSA, Date: "2026-09-01", Session: "1st Hour",
		Status: TrackedStatusCorrection, Code: 111,
	}}
	got := ReconcileCourse(officialWeek(), tracked, courseDSA)
	assert.Equal(t, ReconcileCourse(officialWeek(), nil, courseDSA), got)
}

func TestReconcileCourse_MalformedTrackedEntriesSkipped(t *testing.T) {
	tracked := []TrackedRecord{
		{CourseID: courseDSA, Date: "", Session: "1st Hour", Status: TrackedStatusExtra, Code: 111},
		{CourseID: courseDSA, Date: "2026-08-27", Session: "", Status: TrackedStatusExtra, Code: 111},
		{CourseID: 0, Date: "2026-08-27", Session: "1st Hour", Status: TrackedStatusExtra, Code: 111},
	}
	got := ReconcileCourse(officialWeek(), tracked, courseDSA)
	assert.Equal(t, ReconcileCourse(officialWeek(), nil, courseDSA), got)
}

func TestReconcileCourseSessions_NormalizedSlots(t *testing.T) {
	tracked := []TrackedRecord{
		{CourseID: courseDSA, Date: "2026-08-25", Session: "3rd Hour", Status: TrackedStatusCorrection, Code: 225},
		{CourseID: courseDSA, Date: "2026-08-27", Session: "4th Hour", Status: TrackedStatusExtra, Code: 110},
	}
	slots := ReconcileCourseSessions(officialWeek(), tracked, courseDSA)
	require.Len(t, slots, 4)

	bySource := map[string]int{}
	for _, s := range slots {
		bySource[s.Source]++
	}
	assert.Equal(t, 2, bySource["official"])
	assert.Equal(t, 1, bySource["correction"])
	assert.Equal(t, 1, bySource["extra"])

	for _, s := range slots {
		if s.Source == "correction" {
			assert.Equal(t, 225, s.Code)
			assert.Equal(t, "Duty Leave", s.Label)
		}
	}
}

func TestReconcileAll_CoursesFromBothFeeds(t *testing.T) {
	tracked := []TrackedRecord{
		// Extra for a course the official feed has never seen.
		{CourseID: 7777, Date: "2026-08-27", Session: "1st Hour", Status: TrackedStatusExtra, Code: 111},
		// Orphan correction must not conjure a course.
		{CourseID: 8888, Date: "2026-08-27", Session: "1st Hour", Status: TrackedStatusCorrection, Code: 111},
	}
	got := ReconcileAll(officialWeek(), tracked)
	require.Contains(t, got, courseDSA)
	require.Contains(t, got, 5110)
	require.Contains(t, got, 7777)
	assert.NotContains(t, got, 8888)

	assert.Equal(t, 1, got[7777].Total)
	assert.Equal(t, 1, got[7777].Present)
}

func TestReconcileCourse_UnknownCodeCountsTotalOnly(t *testing.T) {
	official := []OfficialSession{
		{CourseID: courseDSA, Date: "2026-08-24", Session: "1st Hour", Code: 999},
		{CourseID: courseDSA, Date: "2026-08-25", Session: "1st Hour", Code: 111},
	}
	got := ReconcileCourse(official, nil, courseDSA)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Present)
	assert.Equal(t, 1, got.Absent)
}
