package controller

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accountController "ghostclass_backend/internals/features/attendance/account/controller"
	reportService "ghostclass_backend/internals/features/attendance/report/service"
	settingsController "ghostclass_backend/internals/features/attendance/settings/controller"
	statsService "ghostclass_backend/internals/features/attendance/stats/service"
	trackerController "ghostclass_backend/internals/features/attendance/tracker/controller"
	trackerDTO "ghostclass_backend/internals/features/attendance/tracker/dto"
	helper "ghostclass_backend/internals/helpers"
	"ghostclass_backend/internals/helpers/ezygo"
)

type StatsController struct {
	DB      *gorm.DB
	Reports *reportService.ReportService
}

func NewStatsController(db *gorm.DB, portal *ezygo.Client) *StatsController {
	return &StatsController{
		DB:      db,
		Reports: reportService.NewReportService(db, portal),
	}
}

// CourseStats is one course's reconciled numbers plus the bunk projection.
type CourseStats struct {
	CourseID   int     `json:"course_id"`
	CourseCode string  `json:"course_code,omitempty"`
	CourseName string  `json:"course_name,omitempty"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`

	Bunk statsService.AttendanceResult `json:"bunk"`
}

/*
GET /api/u/attendance/stats

Official report and tracked entries reconciled per course, each course run
through the bunk calculator at the user's target (or ?target= override).
*/
func (ctrl *StatsController) Overview(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	acc, err := accountController.FindAccount(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusPreconditionFailed, "Link your Ezygo account first")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read linked account")
	}

	year := c.Query("academic_year", acc.EzygoAccountAcademicYear)
	semester := c.Query("semester", acc.EzygoAccountSemester)

	report, err := ctrl.Reports.Fetch(c.UserContext(), userID, acc.EzygoAccountAccessToken, year, semester)
	if err != nil {
		return mapPortalError(err)
	}

	entries, err := trackerController.FindEntriesForUser(ctrl.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read tracked entries")
	}

	target, err := ctrl.resolveTarget(c, userID)
	if err != nil {
		return err
	}

	tracked := trackerDTO.ToTrackedRecords(entries)
	reconciled := statsService.ReconcileAll(report.Sessions, tracked)

	courseMeta := make(map[int]reportService.CourseSummary, len(report.Courses))
	for _, course := range report.Courses {
		courseMeta[course.CourseID] = course
	}

	courses := make([]CourseStats, 0, len(reconciled))
	for courseID, stats := range reconciled {
		meta := courseMeta[courseID]
		courses = append(courses, CourseStats{
			CourseID:   courseID,
			CourseCode: meta.Code,
			CourseName: meta.Name,
			Present:    stats.Present,
			Absent:     stats.Absent,
			Total:      stats.Total,
			Percentage: stats.Percentage,
			Bunk:       statsService.CalculateAttendance(float64(stats.Present), float64(stats.Total), target),
		})
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseID < courses[j].CourseID })

	return helper.JsonOK(c, "", fiber.Map{
		"target_percentage": statsService.SanitizeTarget(target),
		"from_cache":        report.FromCache,
		"fetched_at":        report.FetchedAt,
		"courses":           courses,
	})
}

/*
GET /api/u/attendance/stats/:course_id/sessions

Per-session reconciled timeline of one course.
*/
func (ctrl *StatsController) CourseSessions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	courseID, err := strconv.Atoi(c.Params("course_id"))
	if err != nil || courseID < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}

	acc, err := accountController.FindAccount(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusPreconditionFailed, "Link your Ezygo account first")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read linked account")
	}

	year := c.Query("academic_year", acc.EzygoAccountAcademicYear)
	semester := c.Query("semester", acc.EzygoAccountSemester)

	report, err := ctrl.Reports.Fetch(c.UserContext(), userID, acc.EzygoAccountAccessToken, year, semester)
	if err != nil {
		return mapPortalError(err)
	}

	entries, err := trackerController.FindEntriesForUser(ctrl.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read tracked entries")
	}

	sessions := statsService.ReconcileCourseSessions(
		report.Sessions,
		trackerDTO.ToTrackedRecords(entries),
		courseID,
	)

	return helper.JsonOK(c, "", fiber.Map{
		"course_id":  courseID,
		"from_cache": report.FromCache,
		"sessions":   sessions,
	})
}

/*
GET /api/public/attendance/bunk?present=&total=&target=

Pure calculator, no auth. Unparseable numbers fall through as zero and let
the calculator's own sanitation answer.
*/
func (ctrl *StatsController) BunkCalculator(c *fiber.Ctx) error {
	present := parseFloatQuery(c, "present")
	total := parseFloatQuery(c, "total")

	target := statsService.DefaultTargetPercentage
	if raw := strings.TrimSpace(c.Query("target")); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			target = parsed
		}
	}

	return helper.JsonOK(c, "", statsService.CalculateAttendance(present, total, target))
}

// target override beats the stored preference
func (ctrl *StatsController) resolveTarget(c *fiber.Ctx, userID uuid.UUID) (float64, error) {
	if raw := strings.TrimSpace(c.Query("target")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid target percentage")
		}
		return parsed, nil
	}

	setting, err := settingsController.FindOrDefault(ctrl.DB, userID)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to read settings")
	}
	return setting.UserSettingTargetPercentage, nil
}

func parseFloatQuery(c *fiber.Ctx, name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Query(name)), 64)
	if err != nil {
		return 0
	}
	return v
}

func mapPortalError(err error) error {
	switch {
	case errors.Is(err, ezygo.ErrUnauthorized):
		return fiber.NewError(fiber.StatusBadGateway, "Portal rejected credentials, please re-link your Ezygo account")
	case errors.Is(err, ezygo.ErrCircuitOpen):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Portal is temporarily unreachable, try again shortly")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "Portal request failed")
	}
}
