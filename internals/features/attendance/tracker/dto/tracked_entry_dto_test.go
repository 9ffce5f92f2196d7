package dto

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackerModel "ghostclass_backend/internals/features/attendance/tracker/model"
)

func TestCreateTrackedEntryRequest_Validation(t *testing.T) {
	v := validator.New()

	valid := CreateTrackedEntryRequest{
		CourseID: 4021,
		Date:     "2026-03-14",
		Session:  "1",
		Status:   "correction",
		Code:     111,
	}
	require.NoError(t, v.Struct(valid))

	t.Run("rejects unknown status", func(t *testing.T) {
		req := valid
		req.Status = "guess"
		assert.Error(t, v.Struct(req))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		req := valid
		req.Date = "14-03-2026"
		assert.Error(t, v.Struct(req))
	})

	t.Run("rejects missing course", func(t *testing.T) {
		req := valid
		req.CourseID = 0
		assert.Error(t, v.Struct(req))
	})
}

func TestCreateTrackedEntryRequest_ToModel(t *testing.T) {
	userID := uuid.New()
	req := CreateTrackedEntryRequest{
		CourseID: 4021,
		Date:     "2026-03-14",
		Session:  "2",
		Status:   "extra",
		Code:     225,
	}

	m := req.ToModel(userID)
	assert.Equal(t, userID, m.TrackedEntryUserID)
	assert.Equal(t, 4021, m.TrackedEntryCourseID)
	assert.Equal(t, "2026-03-14", m.TrackedEntryDate.Format("2006-01-02"))
	assert.Equal(t, "extra", m.TrackedEntryStatus)
	assert.Equal(t, 225, m.TrackedEntryCode)
}

func TestUpdateTrackedEntryRequest_Apply(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-03-14")
	m := trackerModel.TrackedEntryModel{
		TrackedEntryCourseID: 4021,
		TrackedEntryDate:     date,
		TrackedEntrySession:  "1",
		TrackedEntryStatus:   trackerModel.StatusCorrection,
		TrackedEntryCode:     110,
	}

	newCode := 111
	newDate := "2026-03-21"
	req := UpdateTrackedEntryRequest{Code: &newCode, Date: &newDate}
	req.Apply(&m)

	assert.Equal(t, 111, m.TrackedEntryCode)
	assert.Equal(t, "2026-03-21", m.TrackedEntryDate.Format("2006-01-02"))
	// untouched fields keep their values
	assert.Equal(t, trackerModel.StatusCorrection, m.TrackedEntryStatus)
	assert.Equal(t, "1", m.TrackedEntrySession)
}

func TestToTrackedRecords(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-03-14")
	models := []trackerModel.TrackedEntryModel{
		{
			TrackedEntryCourseID: 4021,
			TrackedEntryDate:     date,
			TrackedEntrySession:  "1",
			TrackedEntryStatus:   trackerModel.StatusExtra,
			TrackedEntryCode:     111,
		},
	}

	records := ToTrackedRecords(models)
	require.Len(t, records, 1)
	assert.Equal(t, 4021, records[0].CourseID)
	assert.Equal(t, "2026-03-14", records[0].Date)
	assert.Equal(t, "extra", records[0].Status)
	assert.Equal(t, 111, records[0].Code)
}

func TestFromTrackedEntryModel_Label(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-03-14")
	resp := FromTrackedEntryModel(trackerModel.TrackedEntryModel{
		TrackedEntryCode: 225,
		TrackedEntryDate: date,
	})
	assert.Equal(t, "Duty Leave", resp.CodeLabel)
}
