// file: internals/features/posts/posts/service/like_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mentorku_backend/internals/features/posts/posts/model"
)

// LikeService: toggle like idempotent per (entity, user).
// Toggle kedua oleh user yang sama membatalkan yang pertama (flip is_liked),
// baris tidak pernah dihapus.
type LikeService struct {
	DB *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{DB: db}
}

func (s *LikeService) TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (*model.PostLikeModel, error) {
	var post model.PostModel
	if err := s.DB.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var row model.PostLikeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("post_like_post_id = ? AND post_like_user_id = ?", postID, userID).
			First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = model.PostLikeModel{
				PostLikePostID:  postID,
				PostLikeUserID:  userID,
				PostLikeIsLiked: true,
			}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		row.PostLikeIsLiked = !row.PostLikeIsLiked
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, userID uuid.UUID) (*model.CommentLikeModel, error) {
	var comment model.PostCommentModel
	if err := s.DB.WithContext(ctx).Where("comment_id = ?", commentID).First(&comment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	var row model.CommentLikeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("comment_like_comment_id = ? AND comment_like_user_id = ?", commentID, userID).
			First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = model.CommentLikeModel{
				CommentLikeCommentID: commentID,
				CommentLikeUserID:    userID,
				CommentLikeIsLiked:   true,
			}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		row.CommentLikeIsLiked = !row.CommentLikeIsLiked
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CountPostLikes: jumlah like aktif satu post.
func (s *LikeService) CountPostLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&model.PostLikeModel{}).
		Where("post_like_post_id = ? AND post_like_is_liked = ?", postID, true).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
