package service

import (
	"strconv"
	"strings"

	"ghostclass_backend/internals/constants"
)

/* ==========================
   Attendance reconciler
========================== */

// Tracked entry status tags. "correction" replaces the official mark for its
// slot; "extra" adds a session the official feed does not have.
const (
	TrackedStatusCorrection = "correction"
	TrackedStatusExtra      = "extra"
)

// OfficialSession is one slot of the portal's attendance report.
type OfficialSession struct {
	CourseID int    `json:"course_id"`
	Date     string `json:"date"`
	Session  string `json:"session"`
	Code     int    `json:"code"`
}

// TrackedRecord is a user-submitted correction/extra against a slot.
type TrackedRecord struct {
	CourseID int    `json:"course_id"`
	Date     string `json:"date"`
	Session  string `json:"session"`
	Status   string `json:"status"`
	Code     int    `json:"code"`
}

type ReconciledStats struct {
	CourseID   int     `json:"course_id"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// SessionStatus is one normalized slot after reconciliation.
type SessionStatus struct {
	CourseID int    `json:"course_id"`
	Date     string `json:"date"`
	Session  string `json:"session"`
	Code     int    `json:"code"`
	Label    string `json:"label"`
	Source   string `json:"source"` // official | correction | extra
}

// slotKey identifies one (date, session, course) attendance slot.
func slotKey(date, session string, courseID int) string {
	return date + "|" + session + "|" + strconv.Itoa(courseID)
}

// effectiveSession prefers the tracked entry's session name when non-empty,
// falling back to the raw session key from the official feed.
func effectiveSession(raw string, tracked *TrackedRecord) string {
	if tracked != nil && strings.TrimSpace(tracked.Session) != "" {
		return tracked.Session
	}
	return raw
}

// wellFormed filters tracked entries missing any part of their slot key.
func wellFormed(t TrackedRecord) bool {
	return strings.TrimSpace(t.Date) != "" &&
		strings.TrimSpace(t.Session) != "" &&
		t.CourseID > 0
}

// ReconcileCourseSessions merges the official feed with the user's tracked
// entries for one course and returns every slot with its effective code.
// Corrections replace the official code for their slot (the slot still counts
// once), extras add a slot of their own, and corrections with no matching
// official slot are dropped. It never fails: missing or malformed data yields
// an empty list.
func ReconcileCourseSessions(official []OfficialSession, tracked []TrackedRecord, courseID int) []SessionStatus {
	corrections := make(map[string]TrackedRecord)
	extras := make([]TrackedRecord, 0)
	for _, t := range tracked {
		if t.CourseID != courseID || !wellFormed(t) {
			continue
		}
		switch t.Status {
		case TrackedStatusCorrection:
			corrections[slotKey(t.Date, t.Session, t.CourseID)] = t
		case TrackedStatusExtra:
			extras = append(extras, t)
		}
	}

	sessions := make([]SessionStatus, 0, len(official)+len(extras))
	for _, s := range official {
		if s.CourseID != courseID {
			continue
		}
		slot := SessionStatus{
			CourseID: s.CourseID,
			Date:     s.Date,
			Session:  s.Session,
			Code:     s.Code,
			Source:   "official",
		}
		if corr, ok := corrections[slotKey(s.Date, s.Session, s.CourseID)]; ok {
			slot.Code = corr.Code
			slot.Session = effectiveSession(s.Session, &corr)
			slot.Source = "correction"
		}
		slot.Label = constants.AttendanceStatusLabel(slot.Code)
		sessions = append(sessions, slot)
	}

	for _, e := range extras {
		sessions = append(sessions, SessionStatus{
			CourseID: e.CourseID,
			Date:     e.Date,
			Session:  effectiveSession(e.Session, &e),
			Code:     e.Code,
			Label:    constants.AttendanceStatusLabel(e.Code),
			Source:   "extra",
		})
	}
	return sessions
}

// ReconcileCourse folds the reconciled slots of one course into aggregate
// counts. total = present + absent always holds; percentage is 0 when there
// is no data.
func ReconcileCourse(official []OfficialSession, tracked []TrackedRecord, courseID int) ReconciledStats {
	stats := ReconciledStats{CourseID: courseID}
	for _, slot := range ReconcileCourseSessions(official, tracked, courseID) {
		stats.Total++
		if constants.IsPositiveAttendance(slot.Code) {
			stats.Present++
		}
	}
	stats.Absent = stats.Total - stats.Present
	if stats.Total > 0 {
		stats.Percentage = float64(stats.Present) / float64(stats.Total) * 100
	}
	return stats
}

// ReconcileAll reconciles every course present in either feed, keyed by course
// id. Orphan corrections contribute no course of their own.
func ReconcileAll(official []OfficialSession, tracked []TrackedRecord) map[int]ReconciledStats {
	courseIDs := make(map[int]struct{})
	for _, s := range official {
		if s.CourseID > 0 {
			courseIDs[s.CourseID] = struct{}{}
		}
	}
	for _, t := range tracked {
		if t.Status == TrackedStatusExtra && wellFormed(t) {
			courseIDs[t.CourseID] = struct{}{}
		}
	}

	out := make(map[int]ReconciledStats, len(courseIDs))
	for id := range courseIDs {
		out[id] = ReconcileCourse(official, tracked, id)
	}
	return out
}
