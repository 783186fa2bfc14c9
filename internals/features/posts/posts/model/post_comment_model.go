package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostCommentModel: komentar dengan nesting maksimal satu level.
// Reply terhadap reply ditolak di service. reply_count hanya terisi
// di komentar top-level (denormalisasi).
type PostCommentModel struct {
	CommentID     uuid.UUID  `gorm:"column:comment_id;type:uuid;primaryKey" json:"comment_id"`
	CommentPostID uuid.UUID  `gorm:"column:comment_post_id;type:uuid;not null;index" json:"comment_post_id"`
	CommentUserID uuid.UUID  `gorm:"column:comment_user_id;type:uuid;not null" json:"comment_user_id"`
	CommentParentID *uuid.UUID `gorm:"column:comment_parent_id;type:uuid;index" json:"comment_parent_id,omitempty"`

	CommentContent    string `gorm:"column:comment_content;type:text;not null" json:"comment_content"`
	CommentReplyCount int    `gorm:"column:comment_reply_count;not null;default:0" json:"comment_reply_count"`

	CommentCreatedAt time.Time `gorm:"column:comment_created_at;autoCreateTime" json:"comment_created_at"`
	CommentUpdatedAt time.Time `gorm:"column:comment_updated_at;autoUpdateTime" json:"comment_updated_at"`
}

func (PostCommentModel) TableName() string { return "post_comments" }

func (m *PostCommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.CommentID == uuid.Nil {
		m.CommentID = uuid.New()
	}
	return nil
}

// CommentLikeModel: toggle like per (comment, user), pola sama dengan post like.
type CommentLikeModel struct {
	CommentLikeID        uuid.UUID `gorm:"column:comment_like_id;type:uuid;primaryKey" json:"comment_like_id"`
	CommentLikeCommentID uuid.UUID `gorm:"column:comment_like_comment_id;type:uuid;not null;uniqueIndex:uq_comment_like_comment_user" json:"comment_like_comment_id"`
	CommentLikeUserID    uuid.UUID `gorm:"column:comment_like_user_id;type:uuid;not null;uniqueIndex:uq_comment_like_comment_user" json:"comment_like_user_id"`
	CommentLikeIsLiked   bool      `gorm:"column:comment_like_is_liked;not null;default:true" json:"comment_like_is_liked"`

	CommentLikeCreatedAt time.Time `gorm:"column:comment_like_created_at;autoCreateTime" json:"comment_like_created_at"`
	CommentLikeUpdatedAt time.Time `gorm:"column:comment_like_updated_at;autoUpdateTime" json:"comment_like_updated_at"`
}

func (CommentLikeModel) TableName() string { return "comment_likes" }

func (m *CommentLikeModel) BeforeCreate(tx *gorm.DB) error {
	if m.CommentLikeID == uuid.Nil {
		m.CommentLikeID = uuid.New()
	}
	return nil
}
