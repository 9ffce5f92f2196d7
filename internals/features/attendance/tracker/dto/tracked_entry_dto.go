package dto

import (
	"time"

	"github.com/google/uuid"

	"ghostclass_backend/internals/constants"
	statsService "ghostclass_backend/internals/features/attendance/stats/service"
	trackerModel "ghostclass_backend/internals/features/attendance/tracker/model"
)

const dateLayout = "2006-01-02"

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

// Create
type CreateTrackedEntryRequest struct {
	CourseID int    `json:"course_id" validate:"required,min=1"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Session  string `json:"session" validate:"required,max=50"`
	Status   string `json:"status" validate:"required,oneof=correction extra"`
	Code     int    `json:"code" validate:"required,min=1"`

	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

// Update (partial)
type UpdateTrackedEntryRequest struct {
	Date    *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Session *string `json:"session" validate:"omitempty,max=50"`
	Status  *string `json:"status" validate:"omitempty,oneof=correction extra"`
	Code    *int    `json:"code" validate:"omitempty,min=1"`
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

/*
List query: limit/offset defaults resolved in the controller, filters by
course and status.
*/
type ListTrackedEntryQuery struct {
	CourseID *int    `query:"course_id" validate:"omitempty,min=1"`
	Status   *string `query:"status" validate:"omitempty,oneof=correction extra"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type TrackedEntryResponse struct {
	TrackedEntryID uuid.UUID `json:"tracked_entry_id"`
	CourseID       int       `json:"course_id"`
	Date           string    `json:"date"`
	Session        string    `json:"session"`
	Status         string    `json:"status"`
	Code           int       `json:"code"`
	CodeLabel      string    `json:"code_label"`
	Remarks        *string   `json:"remarks,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

/* =========================================================
   3) MAPPERS
   ========================================================= */

func (r CreateTrackedEntryRequest) ToModel(userID uuid.UUID) trackerModel.TrackedEntryModel {
	date, _ := time.Parse(dateLayout, r.Date)
	return trackerModel.TrackedEntryModel{
		TrackedEntryUserID:   userID,
		TrackedEntryCourseID: r.CourseID,
		TrackedEntryDate:     date,
		TrackedEntrySession:  r.Session,
		TrackedEntryStatus:   r.Status,
		TrackedEntryCode:     r.Code,
		TrackedEntryRemarks:  r.Remarks,
	}
}

func FromTrackedEntryModel(m trackerModel.TrackedEntryModel) TrackedEntryResponse {
	return TrackedEntryResponse{
		TrackedEntryID: m.TrackedEntryID,
		CourseID:       m.TrackedEntryCourseID,
		Date:           m.TrackedEntryDate.Format(dateLayout),
		Session:        m.TrackedEntrySession,
		Status:         m.TrackedEntryStatus,
		Code:           m.TrackedEntryCode,
		CodeLabel:      constants.AttendanceStatusLabel(m.TrackedEntryCode),
		Remarks:        m.TrackedEntryRemarks,
		CreatedAt:      m.TrackedEntryCreatedAt,
		UpdatedAt:      m.TrackedEntryUpdatedAt,
	}
}

// Batch mapper
func FromTrackedEntryModels(models []trackerModel.TrackedEntryModel) []TrackedEntryResponse {
	out := make([]TrackedEntryResponse, 0, len(models))
	for _, m := range models {
		out = append(out, FromTrackedEntryModel(m))
	}
	return out
}

// ToTrackedRecords converts stored rows into the reconciler's input shape.
func ToTrackedRecords(models []trackerModel.TrackedEntryModel) []statsService.TrackedRecord {
	out := make([]statsService.TrackedRecord, 0, len(models))
	for _, m := range models {
		out = append(out, statsService.TrackedRecord{
			CourseID: m.TrackedEntryCourseID,
			Date:     m.TrackedEntryDate.Format(dateLayout),
			Session:  m.TrackedEntrySession,
			Status:   m.TrackedEntryStatus,
			Code:     m.TrackedEntryCode,
		})
	}
	return out
}

/* =========================================================
   4) APPLY (partial update helper)
   ========================================================= */

func (r UpdateTrackedEntryRequest) Apply(m *trackerModel.TrackedEntryModel) {
	if r.Date != nil {
		if date, err := time.Parse(dateLayout, *r.Date); err == nil {
			m.TrackedEntryDate = date
		}
	}
	if r.Session != nil {
		m.TrackedEntrySession = *r.Session
	}
	if r.Status != nil {
		m.TrackedEntryStatus = *r.Status
	}
	if r.Code != nil {
		m.TrackedEntryCode = *r.Code
	}
	if r.Remarks != nil {
		m.TrackedEntryRemarks = r.Remarks
	}
}
