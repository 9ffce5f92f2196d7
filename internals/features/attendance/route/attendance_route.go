package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accountController "ghostclass_backend/internals/features/attendance/account/controller"
	reportController "ghostclass_backend/internals/features/attendance/report/controller"
	settingsController "ghostclass_backend/internals/features/attendance/settings/controller"
	statsController "ghostclass_backend/internals/features/attendance/stats/controller"
	trackerController "ghostclass_backend/internals/features/attendance/tracker/controller"
	"ghostclass_backend/internals/helpers/ezygo"
	"ghostclass_backend/internals/middlewares"
)

/*
AttendancePublicRoutes mounts the calculator endpoint that needs no account.
*/
func AttendancePublicRoutes(public fiber.Router, db *gorm.DB, portal *ezygo.Client) {
	stats := statsController.NewStatsController(db, portal)

	public.Get("/attendance/bunk", stats.BunkCalculator)
}

/*
AttendanceUserRoutes mounts everything behind authentication. Endpoints that
hit the institution portal additionally go through the per-user sync limiter.
*/
func AttendanceUserRoutes(private fiber.Router, db *gorm.DB, portal *ezygo.Client) {
	account := accountController.NewEzygoAccountController(db, portal)
	settings := settingsController.NewUserSettingController(db)
	tracker := trackerController.NewTrackedEntryController(db)
	report := reportController.NewReportController(db, portal)
	stats := statsController.NewStatsController(db, portal)

	syncLimiter := middlewares.PortalSyncRateLimiter()

	// portal account link
	ezygoGroup := private.Group("/ezygo")
	ezygoGroup.Post("/link", syncLimiter, account.Link)
	ezygoGroup.Delete("/link", account.Unlink)
	ezygoGroup.Get("/link", account.Detail)
	ezygoGroup.Put("/academic-period", syncLimiter, account.UpdateAcademicPeriod)
	ezygoGroup.Get("/courses", syncLimiter, account.Courses)

	// preferences
	private.Get("/settings", settings.Detail)
	private.Put("/settings", settings.Update)

	// tracked corrections and extras
	trackerGroup := private.Group("/tracker")
	trackerGroup.Post("/", tracker.Create)
	trackerGroup.Get("/", tracker.List)
	trackerGroup.Get("/:id", tracker.Detail)
	trackerGroup.Put("/:id", tracker.Update)
	trackerGroup.Delete("/:id", tracker.Delete)

	// portal-backed report and reconciled stats
	attendance := private.Group("/attendance")
	attendance.Get("/report", syncLimiter, report.Detail)
	attendance.Get("/stats", syncLimiter, stats.Overview)
	attendance.Get("/stats/:course_id/sessions", syncLimiter, stats.CourseSessions)
}
