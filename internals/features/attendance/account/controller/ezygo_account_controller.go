package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accountDTO "ghostclass_backend/internals/features/attendance/account/dto"
	accountModel "ghostclass_backend/internals/features/attendance/account/model"
	helper "ghostclass_backend/internals/helpers"
	"ghostclass_backend/internals/helpers/ezygo"
)

/* ===============================
   Controller & Constructor
=============================== */

type EzygoAccountController struct {
	DB     *gorm.DB
	Portal *ezygo.Client
}

func NewEzygoAccountController(db *gorm.DB, portal *ezygo.Client) *EzygoAccountController {
	return &EzygoAccountController{DB: db, Portal: portal}
}

// FindAccount loads the portal link row for a user. Shared with the report
// and stats controllers.
func FindAccount(db *gorm.DB, userID any) (*accountModel.EzygoAccountModel, error) {
	var acc accountModel.EzygoAccountModel
	if err := db.First(&acc, "ezygo_account_user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

/* ===============================
   LINK
=============================== */

// POST /api/u/ezygo/link
func (ctrl *EzygoAccountController) Link(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req accountDTO.LinkEzygoAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Exchange credentials with the portal; the password is never stored.
	token, err := ctrl.Portal.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return mapPortalError(err)
	}

	now := time.Now().UTC()
	acc := accountModel.EzygoAccountModel{
		EzygoAccountUserID:         userID,
		EzygoAccountUsername:       req.Username,
		EzygoAccountAccessToken:    token,
		EzygoAccountLastVerifiedAt: &now,
	}

	// upsert: re-linking replaces the stored token
	var existing accountModel.EzygoAccountModel
	err = ctrl.DB.First(&existing, "ezygo_account_user_id = ?", userID).Error
	switch {
	case err == nil:
		existing.EzygoAccountUsername = req.Username
		existing.EzygoAccountAccessToken = token
		existing.EzygoAccountLastVerifiedAt = &now
		if err := ctrl.DB.Save(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update portal link")
		}
		return helper.JsonUpdated(c, "Portal account re-linked", accountDTO.FromEzygoAccountModel(existing))
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := ctrl.DB.Create(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to link portal account")
		}
		return helper.JsonCreated(c, "Portal account linked", accountDTO.FromEzygoAccountModel(acc))
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read portal link")
	}
}

/* ===============================
   UNLINK
=============================== */

// DELETE /api/u/ezygo/link
func (ctrl *EzygoAccountController) Unlink(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	res := ctrl.DB.Delete(&accountModel.EzygoAccountModel{}, "ezygo_account_user_id = ?", userID)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to unlink portal account")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "No portal account linked")
	}
	return helper.JsonDeleted(c, "Portal account unlinked", nil)
}

/* ===============================
   DETAIL
=============================== */

// GET /api/u/ezygo/link
func (ctrl *EzygoAccountController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	acc, err := FindAccount(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No portal account linked")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read portal link")
	}
	return helper.JsonOK(c, "", accountDTO.FromEzygoAccountModel(*acc))
}

/* ===============================
   ACADEMIC PERIOD
=============================== */

// PUT /api/u/ezygo/academic-period
func (ctrl *EzygoAccountController) UpdateAcademicPeriod(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req accountDTO.UpdateAcademicPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	acc, err := FindAccount(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No portal account linked")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read portal link")
	}

	// Push to the portal first; only mirror locally if it accepted.
	if err := ctrl.Portal.SetDefaultAcademicPeriod(c.UserContext(), acc.EzygoAccountAccessToken, req.AcademicYear, req.Semester); err != nil {
		return mapPortalError(err)
	}

	acc.EzygoAccountAcademicYear = req.AcademicYear
	acc.EzygoAccountSemester = req.Semester
	if err := ctrl.DB.Save(acc).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store academic period")
	}
	return helper.JsonUpdated(c, "Academic period updated", accountDTO.FromEzygoAccountModel(*acc))
}

/* ===============================
   COURSES (portal proxy)
=============================== */

// GET /api/u/ezygo/courses
func (ctrl *EzygoAccountController) Courses(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	acc, err := FindAccount(ctrl.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No portal account linked")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read portal link")
	}

	courses, err := ctrl.Portal.Courses(c.UserContext(), acc.EzygoAccountAccessToken)
	if err != nil {
		return mapPortalError(err)
	}
	return helper.JsonOK(c, "", courses)
}

// mapPortalError translates client errors into the HTTP surface: stale
// credentials ask for a re-link, an open breaker is a temporary outage.
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
