// file: internals/features/posts/posts/service/comment_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mentorku_backend/internals/features/posts/posts/model"
)

var (
	ErrCommentNotFound = errors.New("komentar tidak ditemukan")
	// Pesan kontrak: nesting komentar maksimal satu level.
	ErrReplyToReply       = errors.New("Replying to a reply is not allowed")
	ErrEmptyComment       = errors.New("isi komentar wajib diisi")
	ErrNotCommentOwner    = errors.New("bukan pemilik komentar")
)

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

type CreateCommentInput struct {
	PostID   uuid.UUID
	UserID   uuid.UUID
	ParentID *uuid.UUID
	Content  string
}

// Create: komentar baru atau reply satu level.
// Reply menaikkan reply_count parent dalam transaksi yang sama.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*model.PostCommentModel, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	var post model.PostModel
	if err := s.DB.WithContext(ctx).Where("post_id = ?", in.PostID).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := model.PostCommentModel{
		CommentPostID:  in.PostID,
		CommentUserID:  in.UserID,
		CommentContent: content,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.ParentID != nil {
			var parent model.PostCommentModel
			if err := tx.Where("comment_id = ?", *in.ParentID).First(&parent).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrCommentNotFound
				}
				return err
			}
			// parent yang sendirinya reply => grandparent non-null => tolak
			if parent.CommentParentID != nil {
				return ErrReplyToReply
			}
			comment.CommentParentID = in.ParentID

			if err := tx.Model(&model.PostCommentModel{}).
				Where("comment_id = ?", *in.ParentID).
				UpdateColumn("comment_reply_count", gorm.Expr("comment_reply_count + 1")).Error; err != nil {
				return err
			}
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete:
// - komentar top-level: seluruh subtree (komentar + semua reply) dihapus
//   sekaligus, tanpa penyesuaian counter lain
// - reply: hapus + turunkan reply_count parent
func (s *CommentService) Delete(ctx context.Context, commentID, actorID uuid.UUID, isAdmin bool) error {
	var comment model.PostCommentModel
	if err := s.DB.WithContext(ctx).Where("comment_id = ?", commentID).First(&comment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrCommentNotFound
		}
		return err
	}
	if !isAdmin && comment.CommentUserID != actorID {
		return ErrNotCommentOwner
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if comment.CommentParentID == nil {
			// like milik komentar ini + semua reply-nya ikut terhapus
			if err := tx.Where("comment_like_comment_id = ? OR comment_like_comment_id IN (?)",
				commentID,
				tx.Model(&model.PostCommentModel{}).
					Select("comment_id").
					Where("comment_parent_id = ?", commentID),
			).Delete(&model.CommentLikeModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("comment_parent_id = ?", commentID).
				Delete(&model.PostCommentModel{}).Error; err != nil {
				return err
			}
			return tx.Delete(&model.PostCommentModel{}, "comment_id = ?", commentID).Error
		}

		if err := tx.Where("comment_like_comment_id = ?", commentID).
			Delete(&model.CommentLikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.PostCommentModel{}, "comment_id = ?", commentID).Error; err != nil {
			return err
		}
		return tx.Model(&model.PostCommentModel{}).
			Where("comment_id = ? AND comment_reply_count > 0", *comment.CommentParentID).
			UpdateColumn("comment_reply_count", gorm.Expr("comment_reply_count - 1")).Error
	})
}

// ListByPost: komentar top-level satu post (reply diambil per-parent oleh client).
func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.PostCommentModel, error) {
	var rows []model.PostCommentModel
	if err := s.DB.WithContext(ctx).
		Where("comment_post_id = ? AND comment_parent_id IS NULL", postID).
		Order("comment_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListReplies: reply satu komentar top-level.
func (s *CommentService) ListReplies(ctx context.Context, parentID uuid.UUID) ([]model.PostCommentModel, error) {
	var rows []model.PostCommentModel
	if err := s.DB.WithContext(ctx).
		Where("comment_parent_id = ?", parentID).
		Order("comment_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByPost: agregat jumlah komentar (termasuk reply) satu post.
func (s *CommentService) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&model.PostCommentModel{}).
		Where("comment_post_id = ?", postID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
