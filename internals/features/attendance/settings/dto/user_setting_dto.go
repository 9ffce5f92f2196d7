package dto

import (
	settingsModel "ghostclass_backend/internals/features/attendance/settings/model"
)

/* =========================================================
   1) REQUEST DTO (partial update)
   ========================================================= */

type UpdateUserSettingRequest struct {
	TargetPercentage *float64 `json:"target_percentage" validate:"omitempty,gt=0,lte=100"`
	AcademicYear     *string  `json:"academic_year" validate:"omitempty,max=20"`
	Semester         *string  `json:"semester" validate:"omitempty,oneof=odd even"`
	VisibleSemesters []int64  `json:"visible_semesters" validate:"omitempty,max=12,dive,min=1,max=12"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type UserSettingResponse struct {
	TargetPercentage float64 `json:"target_percentage"`
	AcademicYear     string  `json:"academic_year,omitempty"`
	Semester         string  `json:"semester,omitempty"`
	VisibleSemesters []int64 `json:"visible_semesters,omitempty"`
}

/* =========================================================
   3) MAPPERS
   ========================================================= */

func FromUserSettingModel(m settingsModel.UserSettingModel) UserSettingResponse {
	return UserSettingResponse{
		TargetPercentage: m.UserSettingTargetPercentage,
		AcademicYear:     m.UserSettingAcademicYear,
		Semester:         m.UserSettingSemester,
		VisibleSemesters: m.UserSettingVisibleSemesters,
	}
}

/* =========================================================
   4) APPLY (partial update helper)
   ========================================================= */

func (r UpdateUserSettingRequest) Apply(m *settingsModel.UserSettingModel) {
	if r.TargetPercentage != nil {
		m.UserSettingTargetPercentage = settingsModel.ClampTargetPercentage(*r.TargetPercentage)
	}
	if r.AcademicYear != nil {
		m.UserSettingAcademicYear = *r.AcademicYear
	}
	if r.Semester != nil {
		m.UserSettingSemester = *r.Semester
	}
	if r.VisibleSemesters != nil {
		m.UserSettingVisibleSemesters = r.VisibleSemesters
	}
}
