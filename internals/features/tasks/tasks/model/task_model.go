package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskModel adalah katalog tugas. Dari sisi core bersifat read-only:
// record dibuat/diubah lewat proses lain, core hanya cek keberadaan.
type TaskModel struct {
	TaskID          uuid.UUID `gorm:"column:task_id;type:uuid;primaryKey" json:"task_id"`
	TaskTitle       string    `gorm:"column:task_title;type:varchar(255);not null" json:"task_title"`
	TaskObjective   *string   `gorm:"column:task_objective;type:text" json:"task_objective,omitempty"`
	TaskDescription *string   `gorm:"column:task_description;type:text" json:"task_description,omitempty"`
	TaskDuration    *string   `gorm:"column:task_duration;type:varchar(50)" json:"task_duration,omitempty"`
	TaskIconURL     *string   `gorm:"column:task_icon_url;type:text" json:"task_icon_url,omitempty"`
	TaskLink        *string   `gorm:"column:task_link;type:text" json:"task_link,omitempty"`

	TaskCreatedAt time.Time `gorm:"column:task_created_at;autoCreateTime" json:"task_created_at"`
	TaskUpdatedAt time.Time `gorm:"column:task_updated_at;autoUpdateTime" json:"task_updated_at"`
}

func (TaskModel) TableName() string { return "tasks" }

func (m *TaskModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskID == uuid.Nil {
		m.TaskID = uuid.New()
	}
	return nil
}
