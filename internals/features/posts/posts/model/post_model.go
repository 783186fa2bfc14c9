package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
)

const (
	// PostTypeTask menandai post hasil publish submission tugas.
	PostTypeTask    = "task"
	PostTypeGeneral = "general"
)

type PostModel struct {
	PostID     uuid.UUID `gorm:"column:post_id;type:uuid;primaryKey" json:"post_id"`
	PostUserID uuid.UUID `gorm:"column:post_user_id;type:uuid;not null;index" json:"post_user_id"`

	PostText *string `gorm:"column:post_text;type:text" json:"post_text,omitempty"`

	// [{original, compressed}]; untuk post_type=task ini referensi ke path
	// milik submission (tidak ada duplikasi file)
	PostImages datatypes.JSON `gorm:"column:post_images;type:jsonb" json:"post_images,omitempty"`

	PostStatus    PostStatus `gorm:"column:post_status;type:varchar(20);not null;default:'pending'" json:"post_status"`
	PostIsPrivate bool       `gorm:"column:post_is_private;not null;default:false" json:"post_is_private"`
	PostType      string     `gorm:"column:post_type;type:varchar(20);not null;default:'general'" json:"post_type"`

	// Diisi hanya untuk post_type=task, supaya delete bisa reset is_posted
	// di submission asal.
	PostSubmissionID *uuid.UUID `gorm:"column:post_submission_id;type:uuid" json:"post_submission_id,omitempty"`

	PostCreatedAt time.Time `gorm:"column:post_created_at;autoCreateTime" json:"post_created_at"`
	PostUpdatedAt time.Time `gorm:"column:post_updated_at;autoUpdateTime" json:"post_updated_at"`
}

func (PostModel) TableName() string { return "posts" }

func (m *PostModel) BeforeCreate(tx *gorm.DB) error {
	if m.PostID == uuid.Nil {
		m.PostID = uuid.New()
	}
	return nil
}
