package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "ghostclass_backend/internals/features/attendance/route"
	"ghostclass_backend/internals/helpers/ezygo"
)

func AttendancePublicRoutes(public fiber.Router, db *gorm.DB, portal *ezygo.Client) {
	attendanceRoute.AttendancePublicRoutes(public, db, portal)
}

func AttendanceUserRoutes(private fiber.Router, db *gorm.DB, portal *ezygo.Client) {
	attendanceRoute.AttendanceUserRoutes(private, db, portal)
}
