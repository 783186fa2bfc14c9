package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskSubmissionStatus string

const (
	TaskSubmissionStatusSubmitted TaskSubmissionStatus = "submitted"
	TaskSubmissionStatusApproved  TaskSubmissionStatus = "approved"
	TaskSubmissionStatusRejected  TaskSubmissionStatus = "rejected"
)

// TaskSubmissionModel: satu attempt bukti pengerjaan tugas.
// Maksimal satu submission non-rejected per (user, task), dijaga service
// saat intake; query review selalu memfilter status <> 'rejected'.
type TaskSubmissionModel struct {
	SubmissionID     uuid.UUID `gorm:"column:submission_id;type:uuid;primaryKey" json:"submission_id"`
	SubmissionUserID uuid.UUID `gorm:"column:submission_user_id;type:uuid;not null;index" json:"submission_user_id"`
	SubmissionTaskID uuid.UUID `gorm:"column:submission_task_id;type:uuid;not null;index" json:"submission_task_id"`

	SubmissionMessage *string `gorm:"column:submission_message;type:text" json:"submission_message,omitempty"`

	// [{original, compressed}], path publik (staging atau final)
	SubmissionImages datatypes.JSON `gorm:"column:submission_images;type:jsonb" json:"submission_images,omitempty"`
	// [{filePath, fileName}]
	SubmissionFiles datatypes.JSON `gorm:"column:submission_files;type:jsonb" json:"submission_files,omitempty"`

	SubmissionStatus   TaskSubmissionStatus `gorm:"column:submission_status;type:varchar(20);not null;default:'submitted'" json:"submission_status"`
	SubmissionIsPosted bool                 `gorm:"column:submission_is_posted;not null;default:false" json:"submission_is_posted"`

	SubmissionGrade  *string `gorm:"column:submission_grade;type:varchar(20)" json:"submission_grade,omitempty"`
	SubmissionRemark *string `gorm:"column:submission_remark;type:text" json:"submission_remark,omitempty"`

	SubmissionCreatedAt time.Time `gorm:"column:submission_created_at;autoCreateTime" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"column:submission_updated_at;autoUpdateTime" json:"submission_updated_at"`
}

func (TaskSubmissionModel) TableName() string { return "task_submissions" }

func (m *TaskSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	return nil
}
