package model

import (
	"time"

	"github.com/google/uuid"
)

// EzygoAccountModel links a GhostClass user to their institution-portal
// account. The portal bearer token is stored server-side only.
type EzygoAccountModel struct {
	EzygoAccountID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:ezygo_account_id" json:"ezygo_account_id"`
	EzygoAccountUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_ezygo_account_user;column:ezygo_account_user_id" json:"ezygo_account_user_id"`

	EzygoAccountUsername    string `gorm:"size:100;not null;column:ezygo_account_username" json:"ezygo_account_username"`
	EzygoAccountAccessToken string `gorm:"type:text;not null;column:ezygo_account_access_token" json:"-"`

	EzygoAccountAcademicYear string `gorm:"size:20;column:ezygo_account_academic_year" json:"ezygo_account_academic_year"`
	EzygoAccountSemester     string `gorm:"size:20;column:ezygo_account_semester" json:"ezygo_account_semester"`

	EzygoAccountLastVerifiedAt *time.Time `gorm:"column:ezygo_account_last_verified_at" json:"ezygo_account_last_verified_at,omitempty"`

	EzygoAccountCreatedAt time.Time  `gorm:"column:ezygo_account_created_at;autoCreateTime" json:"ezygo_account_created_at"`
	EzygoAccountUpdatedAt *time.Time `gorm:"column:ezygo_account_updated_at;autoUpdateTime" json:"ezygo_account_updated_at,omitempty"`
}

func (EzygoAccountModel) TableName() string {
	return "ezygo_accounts"
}
