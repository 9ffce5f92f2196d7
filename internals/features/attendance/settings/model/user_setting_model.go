package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	// Target percentage bounds for stored preferences. The institution floor
	// is 50; the calculator itself accepts any target in [1, 100].
	MinTargetPercentage     = 50.0
	MaxTargetPercentage     = 100.0
	DefaultTargetPercentage = 75.0
)

// ClampTargetPercentage normalizes a stored preference into [50, 100];
// out-of-range or non-positive input falls back to the default.
func ClampTargetPercentage(target float64) float64 {
	if target <= 0 {
		return DefaultTargetPercentage
	}
	if target < MinTargetPercentage {
		return MinTargetPercentage
	}
	if target > MaxTargetPercentage {
		return MaxTargetPercentage
	}
	return target
}

type UserSettingModel struct {
	UserSettingID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_setting_id" json:"user_setting_id"`
	UserSettingUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_setting_user;column:user_setting_user_id" json:"user_setting_user_id"`

	UserSettingTargetPercentage float64 `gorm:"not null;default:75;column:user_setting_target_percentage" json:"user_setting_target_percentage"`

	UserSettingAcademicYear string `gorm:"size:20;column:user_setting_academic_year" json:"user_setting_academic_year"`
	UserSettingSemester     string `gorm:"size:20;column:user_setting_semester" json:"user_setting_semester"`

	// Semesters the dashboard shows, e.g. {1,2,3}.
	UserSettingVisibleSemesters pq.Int64Array `gorm:"type:int[];column:user_setting_visible_semesters" json:"user_setting_visible_semesters"`

	UserSettingCreatedAt time.Time  `gorm:"column:user_setting_created_at;autoCreateTime" json:"user_setting_created_at"`
	UserSettingUpdatedAt *time.Time `gorm:"column:user_setting_updated_at;autoUpdateTime" json:"user_setting_updated_at,omitempty"`
}

func (UserSettingModel) TableName() string {
	return "user_settings"
}
