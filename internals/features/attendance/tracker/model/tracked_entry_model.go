package model

import (
	"time"

	"github.com/google/uuid"
)

// Tracked entry status: a correction overrides the official mark for its
// slot, an extra adds a session the official feed does not have.
const (
	StatusCorrection = "correction"
	StatusExtra      = "extra"
)

type TrackedEntryModel struct {
	TrackedEntryID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:tracked_entry_id" json:"tracked_entry_id"`
	TrackedEntryUserID uuid.UUID `gorm:"type:uuid;not null;column:tracked_entry_user_id;index:idx_tracked_entry_user,priority:1;uniqueIndex:uq_tracked_entry_slot,priority:1" json:"tracked_entry_user_id"`

	TrackedEntryCourseID int       `gorm:"not null;column:tracked_entry_course_id;index:idx_tracked_entry_user,priority:2;uniqueIndex:uq_tracked_entry_slot,priority:2" json:"tracked_entry_course_id"`
	TrackedEntryDate     time.Time `gorm:"type:date;not null;column:tracked_entry_date;uniqueIndex:uq_tracked_entry_slot,priority:3" json:"tracked_entry_date"`
	TrackedEntrySession  string    `gorm:"size:50;not null;column:tracked_entry_session;uniqueIndex:uq_tracked_entry_slot,priority:4" json:"tracked_entry_session"`

	// correction | extra
	TrackedEntryStatus string `gorm:"size:20;not null;column:tracked_entry_status;uniqueIndex:uq_tracked_entry_slot,priority:5" json:"tracked_entry_status"`

	// portal attendance code (110/111/112/220/225)
	TrackedEntryCode int `gorm:"not null;column:tracked_entry_code" json:"tracked_entry_code"`

	TrackedEntryRemarks *string `gorm:"size:500;column:tracked_entry_remarks" json:"tracked_entry_remarks,omitempty"`

	TrackedEntryCreatedAt time.Time  `gorm:"column:tracked_entry_created_at;autoCreateTime" json:"tracked_entry_created_at"`
	TrackedEntryUpdatedAt *time.Time `gorm:"column:tracked_entry_updated_at;autoUpdateTime" json:"tracked_entry_updated_at,omitempty"`
}

func (TrackedEntryModel) TableName() string {
	return "tracked_entries"
}
