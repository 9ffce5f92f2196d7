package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	reportModel "ghostclass_backend/internals/features/attendance/report/model"
	statsService "ghostclass_backend/internals/features/attendance/stats/service"
	"ghostclass_backend/internals/helpers/ezygo"
)

// ErrNoSnapshot means the portal is down and no cached report exists yet.
var ErrNoSnapshot = errors.New("no report snapshot available")

// CourseSummary is one enrolled course as exposed by the report endpoints.
type CourseSummary struct {
	CourseID int    `json:"course_id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
}

// Report is the normalized attendance report served to clients and fed to
// the reconciler.
type Report struct {
	Courses   []CourseSummary                `json:"courses"`
	Sessions  []statsService.OfficialSession `json:"sessions"`
	FromCache bool                           `json:"from_cache"`
	FetchedAt time.Time                      `json:"fetched_at"`
}

type ReportService struct {
	DB     *gorm.DB
	Portal *ezygo.Client
}

func NewReportService(db *gorm.DB, portal *ezygo.Client) *ReportService {
	return &ReportService{DB: db, Portal: portal}
}

/*
Fetch pulls the detailed report from the portal and refreshes the stored
snapshot. When the portal is unavailable (circuit open or upstream error)
the last snapshot for the same period is replayed instead. Credential
failures are never masked by the cache: the caller must re-link.
*/
func (s *ReportService) Fetch(ctx context.Context, userID uuid.UUID, token, year, semester string) (*Report, error) {
	raw, err := s.Portal.AttendanceReport(ctx, token, year, semester)
	if err != nil {
		if errors.Is(err, ezygo.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("[WARN] portal report fetch failed, trying snapshot: %v", err)
		cached, cacheErr := s.loadSnapshot(userID, year, semester)
		if cacheErr != nil {
			return nil, err
		}
		return cached, nil
	}

	if err := s.saveSnapshot(userID, year, semester, raw); err != nil {
		// A stale snapshot is worse than none, but a failed write must not
		// block serving the fresh report.
		log.Printf("[ERROR] store report snapshot: %v", err)
	}

	report := Normalize(raw)
	report.FetchedAt = time.Now().UTC()
	return report, nil
}

func (s *ReportService) loadSnapshot(userID uuid.UUID, year, semester string) (*Report, error) {
	var snap reportModel.ReportSnapshotModel
	err := s.DB.First(&snap,
		"report_snapshot_user_id = ? AND report_snapshot_academic_year = ? AND report_snapshot_academic_semester = ?",
		userID, year, semester,
	).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	var raw ezygo.AttendanceReport
	if err := json.Unmarshal(snap.ReportSnapshotPayload, &raw); err != nil {
		return nil, err
	}

	report := Normalize(&raw)
	report.FromCache = true
	report.FetchedAt = snap.ReportSnapshotFetchedAt
	return report, nil
}

func (s *ReportService) saveSnapshot(userID uuid.UUID, year, semester string, raw *ezygo.AttendanceReport) error {
	payload, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	snap := reportModel.ReportSnapshotModel{
		ReportSnapshotUserID:           userID,
		ReportSnapshotAcademicYear:     year,
		ReportSnapshotAcademicSemester: semester,
		ReportSnapshotPayload:          datatypes.JSON(payload),
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "report_snapshot_user_id"},
			{Name: "report_snapshot_academic_year"},
			{Name: "report_snapshot_academic_semester"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"report_snapshot_payload",
			"report_snapshot_fetched_at",
		}),
	}).Create(&snap).Error
}

/*
Normalize flattens the portal's date -> session -> slot report into ordered
official sessions plus a course list. Slots pointing at a course absent from
the course map are kept; the reconciler only needs the course id.
*/
func Normalize(raw *ezygo.AttendanceReport) *Report {
	out := &Report{
		Courses:  make([]CourseSummary, 0, len(raw.Courses)),
		Sessions: make([]statsService.OfficialSession, 0),
	}

	for key, course := range raw.Courses {
		id := course.ID
		if id == 0 {
			// some portal responses only carry the id in the map key
			if parsed, err := strconv.Atoi(key); err == nil {
				id = parsed
			}
		}
		out.Courses = append(out.Courses, CourseSummary{
			CourseID: id,
			Code:     course.Code,
			Name:     course.Name,
		})
	}
	sort.Slice(out.Courses, func(i, j int) bool {
		return out.Courses[i].CourseID < out.Courses[j].CourseID
	})

	dates := make([]string, 0, len(raw.Report))
	for date := range raw.Report {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		slots := raw.Report[date]
		sessions := make([]string, 0, len(slots))
		for session := range slots {
			sessions = append(sessions, session)
		}
		sort.Strings(sessions)

		for _, session := range sessions {
			slot := slots[session]
			out.Sessions = append(out.Sessions, statsService.OfficialSession{
				CourseID: slot.Course,
				Date:     date,
				Session:  session,
				Code:     slot.Attendance,
			})
		}
	}

	return out
}
