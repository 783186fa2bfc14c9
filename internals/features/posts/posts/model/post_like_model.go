package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostLikeModel: toggle like per (post, user). Baris tidak dihapus saat
// unlike, is_liked di-flip supaya toggle idempotent.
type PostLikeModel struct {
	PostLikeID      uuid.UUID `gorm:"column:post_like_id;type:uuid;primaryKey" json:"post_like_id"`
	PostLikePostID  uuid.UUID `gorm:"column:post_like_post_id;type:uuid;not null;uniqueIndex:uq_post_like_post_user" json:"post_like_post_id"`
	PostLikeUserID  uuid.UUID `gorm:"column:post_like_user_id;type:uuid;not null;uniqueIndex:uq_post_like_post_user" json:"post_like_user_id"`
	PostLikeIsLiked bool      `gorm:"column:post_like_is_liked;not null;default:true" json:"post_like_is_liked"`

	PostLikeCreatedAt time.Time `gorm:"column:post_like_created_at;autoCreateTime" json:"post_like_created_at"`
	PostLikeUpdatedAt time.Time `gorm:"column:post_like_updated_at;autoUpdateTime" json:"post_like_updated_at"`
}

func (PostLikeModel) TableName() string { return "post_likes" }

func (m *PostLikeModel) BeforeCreate(tx *gorm.DB) error {
	if m.PostLikeID == uuid.Nil {
		m.PostLikeID = uuid.New()
	}
	return nil
}
