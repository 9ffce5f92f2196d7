package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accountController "ghostclass_backend/internals/features/attendance/account/controller"
	reportService "ghostclass_backend/internals/features/attendance/report/service"
	helper "ghostclass_backend/internals/helpers"
	"ghostclass_backend/internals/helpers/ezygo"
)

type ReportController struct {
	Service *reportService.ReportService
}

func NewReportController(db *gorm.DB, portal *ezygo.Client) *ReportController {
	return &ReportController{Service: reportService.NewReportService(db, portal)}
}

// GET /api/u/attendance/report
func (ctrl *ReportController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	acc, err := accountController.FindAccount(ctrl.Service.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusPreconditionFailed, "Link your Ezygo account first")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read linked account")
	}

	// explicit period override, otherwise the linked account's default
	year := c.Query("academic_year", acc.EzygoAccountAcademicYear)
	semester := c.Query("semester", acc.EzygoAccountSemester)

	report, err := ctrl.Service.Fetch(c.UserContext(), userID, acc.EzygoAccountAccessToken, year, semester)
	if err != nil {
		return mapPortalError(err)
	}

	return helper.JsonOK(c, "", report)
}

func mapPortalError(err error) error {
	switch {
	case errors.Is(err, ezygo.ErrUnauthorized):
		return fiber.NewError(fiber.StatusBadGateway, "Portal rejected credentials, please re-link your Ezygo account")
	case errors.Is(err, ezygo.ErrCircuitOpen):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Portal is temporarily unreachable, try again shortly")
	case errors.Is(err, reportService.ErrNoSnapshot):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Portal is unreachable and no cached report exists yet")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "Portal request failed")
	}
}
