package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	settingsDTO "ghostclass_backend/internals/features/attendance/settings/dto"
	settingsModel "ghostclass_backend/internals/features/attendance/settings/model"
	helper "ghostclass_backend/internals/helpers"
)

type UserSettingController struct {
	DB *gorm.DB
}

func NewUserSettingController(db *gorm.DB) *UserSettingController {
	return &UserSettingController{DB: db}
}

// FindOrDefault returns the stored settings row, or an unsaved default one.
// Shared with the stats controller for the target percentage.
func FindOrDefault(db *gorm.DB, userID uuid.UUID) (settingsModel.UserSettingModel, error) {
	var s settingsModel.UserSettingModel
	err := db.First(&s, "user_setting_user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return settingsModel.UserSettingModel{
			UserSettingUserID:           userID,
			UserSettingTargetPercentage: settingsModel.DefaultTargetPercentage,
		}, nil
	}
	return s, err
}

// GET /api/u/settings
func (ctrl *UserSettingController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	s, err := FindOrDefault(ctrl.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read settings")
	}
	return helper.JsonOK(c, "", settingsDTO.FromUserSettingModel(s))
}

// PUT /api/u/settings
func (ctrl *UserSettingController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req settingsDTO.UpdateUserSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s, err := FindOrDefault(ctrl.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read settings")
	}

	req.Apply(&s)
	if err := ctrl.DB.Save(&s).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store settings")
	}
	return helper.JsonUpdated(c, "Settings updated", settingsDTO.FromUserSettingModel(s))
}
