package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status progres satu tugas untuk satu user.
// 'rejected' terminal per attempt submission; retry = submission baru.
type UserTaskStatus string

const (
	UserTaskStatusAssign    UserTaskStatus = "assign"
	UserTaskStatusSubmitted UserTaskStatus = "submitted"
	UserTaskStatusApproved  UserTaskStatus = "approved"
	UserTaskStatusRejected  UserTaskStatus = "rejected"
)

// UserTaskAssignmentModel: satu baris per (user, task). Unique constraint
// menggantikan aturan merge in-document (task_id unik per user).
type UserTaskAssignmentModel struct {
	UserTaskID     uuid.UUID      `gorm:"column:user_task_id;type:uuid;primaryKey" json:"user_task_id"`
	UserTaskUserID uuid.UUID      `gorm:"column:user_task_user_id;type:uuid;not null;uniqueIndex:uq_user_task_user_task" json:"user_task_user_id"`
	UserTaskTaskID uuid.UUID      `gorm:"column:user_task_task_id;type:uuid;not null;uniqueIndex:uq_user_task_user_task" json:"user_task_task_id"`
	UserTaskStatus UserTaskStatus `gorm:"column:user_task_status;type:varchar(20);not null;default:'assign'" json:"user_task_status"`

	UserTaskCreatedAt time.Time `gorm:"column:user_task_created_at;autoCreateTime" json:"user_task_created_at"`
	UserTaskUpdatedAt time.Time `gorm:"column:user_task_updated_at;autoUpdateTime" json:"user_task_updated_at"`
}

func (UserTaskAssignmentModel) TableName() string { return "user_task_assignments" }

func (m *UserTaskAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserTaskID == uuid.Nil {
		m.UserTaskID = uuid.New()
	}
	return nil
}
