package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	trackerDTO "ghostclass_backend/internals/features/attendance/tracker/dto"
	trackerModel "ghostclass_backend/internals/features/attendance/tracker/model"
	helper "ghostclass_backend/internals/helpers"
)

type TrackedEntryController struct {
	DB *gorm.DB
}

func NewTrackedEntryController(db *gorm.DB) *TrackedEntryController {
	return &TrackedEntryController{DB: db}
}

var validate = validator.New()

/*
FindEntriesForUser loads every tracked row owned by a user. Shared with the
stats controller, which feeds the rows into the reconciler.
*/
func FindEntriesForUser(db *gorm.DB, userID uuid.UUID) ([]trackerModel.TrackedEntryModel, error) {
	var entries []trackerModel.TrackedEntryModel
	err := db.
		Where("tracked_entry_user_id = ?", userID).
		Order("tracked_entry_date ASC, tracked_entry_session ASC").
		Find(&entries).Error
	return entries, err
}

func fieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			out[field] = append(out[field], fe.Tag())
		}
	}
	return out
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// lib/pq surfaces 23505 in the message through GORM
	return err != nil && strings.Contains(err.Error(), "23505")
}

// POST /api/u/tracker
func (ctrl *TrackedEntryController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req trackerDTO.CreateTrackedEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	entry := req.ToModel(userID)
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "An entry for this slot already exists")
		}
		log.Printf("[ERROR] create tracked entry: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store entry")
	}

	return helper.JsonCreated(c, "Entry recorded", trackerDTO.FromTrackedEntryModel(entry))
}

// GET /api/u/tracker
func (ctrl *TrackedEntryController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var q trackerDTO.ListTrackedEntryQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := validate.Struct(q); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctrl.DB.Model(&trackerModel.TrackedEntryModel{}).
		Where("tracked_entry_user_id = ?", userID)
	if q.CourseID != nil {
		tx = tx.Where("tracked_entry_course_id = ?", *q.CourseID)
	}
	if q.Status != nil {
		tx = tx.Where("tracked_entry_status = ?", *q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count entries")
	}

	var entries []trackerModel.TrackedEntryModel
	if err := tx.
		Order("tracked_entry_date DESC, tracked_entry_session ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&entries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list entries")
	}

	return helper.JsonList(c, "",
		trackerDTO.FromTrackedEntryModels(entries),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit),
	)
}

// GET /api/u/tracker/:id
func (ctrl *TrackedEntryController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid entry ID")
	}

	var entry trackerModel.TrackedEntryModel
	if err := ctrl.DB.
		First(&entry, "tracked_entry_id = ? AND tracked_entry_user_id = ?", entryID, userID).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Entry not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read entry")
	}

	return helper.JsonOK(c, "", trackerDTO.FromTrackedEntryModel(entry))
}

// PUT /api/u/tracker/:id
func (ctrl *TrackedEntryController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid entry ID")
	}

	var req trackerDTO.UpdateTrackedEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	var entry trackerModel.TrackedEntryModel
	if err := ctrl.DB.
		First(&entry, "tracked_entry_id = ? AND tracked_entry_user_id = ?", entryID, userID).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Entry not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read entry")
	}

	req.Apply(&entry)
	if err := ctrl.DB.Save(&entry).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "An entry for this slot already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store entry")
	}

	return helper.JsonUpdated(c, "Entry updated", trackerDTO.FromTrackedEntryModel(entry))
}

// DELETE /api/u/tracker/:id
func (ctrl *TrackedEntryController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid entry ID")
	}

	res := ctrl.DB.
		Where("tracked_entry_id = ? AND tracked_entry_user_id = ?", entryID, userID).
		Delete(&trackerModel.TrackedEntryModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete entry")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Entry not found")
	}

	return helper.JsonDeleted(c, "Entry removed", fiber.Map{"tracked_entry_id": entryID})
}
