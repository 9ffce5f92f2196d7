package dto

import (
	"time"

	accountModel "ghostclass_backend/internals/features/attendance/account/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type LinkEzygoAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=1"`
}

type UpdateAcademicPeriodRequest struct {
	AcademicYear string `json:"academic_year" validate:"required,max=20"`
	Semester     string `json:"semester" validate:"required,oneof=odd even"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

// The access token never leaves the server.
type EzygoAccountResponse struct {
	Username       string     `json:"username"`
	AcademicYear   string     `json:"academic_year,omitempty"`
	Semester       string     `json:"semester,omitempty"`
	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty"`
	LinkedAt       time.Time  `json:"linked_at"`
}

/* =========================================================
   3) MAPPERS
   ========================================================= */

func FromEzygoAccountModel(m accountModel.EzygoAccountModel) EzygoAccountResponse {
	return EzygoAccountResponse{
		Username:       m.EzygoAccountUsername,
		AcademicYear:   m.EzygoAccountAcademicYear,
		Semester:       m.EzygoAccountSemester,
		LastVerifiedAt: m.EzygoAccountLastVerifiedAt,
		LinkedAt:       m.EzygoAccountCreatedAt,
	}
}
