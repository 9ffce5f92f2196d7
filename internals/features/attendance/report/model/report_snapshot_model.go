package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
ReportSnapshotModel stores the last attendance report fetched from the portal
for one user and academic period. Served as a fallback when the portal is
unreachable.
*/
type ReportSnapshotModel struct {
	ReportSnapshotID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:report_snapshot_id" json:"report_snapshot_id"`
	ReportSnapshotUserID uuid.UUID `gorm:"type:uuid;not null;column:report_snapshot_user_id;uniqueIndex:uq_report_snapshot_period,priority:1" json:"report_snapshot_user_id"`

	ReportSnapshotAcademicYear     string `gorm:"size:20;not null;column:report_snapshot_academic_year;uniqueIndex:uq_report_snapshot_period,priority:2" json:"report_snapshot_academic_year"`
	ReportSnapshotAcademicSemester string `gorm:"size:10;not null;column:report_snapshot_academic_semester;uniqueIndex:uq_report_snapshot_period,priority:3" json:"report_snapshot_academic_semester"`

	// Raw portal payload as fetched, replayed on portal outage.
	ReportSnapshotPayload datatypes.JSON `gorm:"type:jsonb;not null;column:report_snapshot_payload" json:"report_snapshot_payload"`

	ReportSnapshotFetchedAt time.Time `gorm:"column:report_snapshot_fetched_at;autoUpdateTime" json:"report_snapshot_fetched_at"`
	ReportSnapshotCreatedAt time.Time `gorm:"column:report_snapshot_created_at;autoCreateTime" json:"report_snapshot_created_at"`
}

func (ReportSnapshotModel) TableName() string {
	return "report_snapshots"
}
