// file: internals/features/posts/posts/dto/post_comment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "mentorku_backend/internals/features/posts/posts/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Komentar baru. parent_id terisi = reply (maks satu level).
type CreateCommentRequest struct {
	PostID   uuid.UUID  `json:"post_id" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id" validate:"omitempty"`
	Content  string     `json:"content" validate:"required,max=2000"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type PostCommentResponse struct {
	CommentID       uuid.UUID  `json:"comment_id"`
	CommentPostID   uuid.UUID  `json:"comment_post_id"`
	CommentUserID   uuid.UUID  `json:"comment_user_id"`
	CommentParentID *uuid.UUID `json:"comment_parent_id,omitempty"`

	CommentContent    string `json:"comment_content"`
	CommentReplyCount int    `json:"comment_reply_count"`

	CommentCreatedAt time.Time `json:"comment_created_at"`
	CommentUpdatedAt time.Time `json:"comment_updated_at"`
}

func NewPostCommentResponse(mdl m.PostCommentModel) PostCommentResponse {
	return PostCommentResponse{
		CommentID:         mdl.CommentID,
		CommentPostID:     mdl.CommentPostID,
		CommentUserID:     mdl.CommentUserID,
		CommentParentID:   mdl.CommentParentID,
		CommentContent:    mdl.CommentContent,
		CommentReplyCount: mdl.CommentReplyCount,
		CommentCreatedAt:  mdl.CommentCreatedAt,
		CommentUpdatedAt:  mdl.CommentUpdatedAt,
	}
}

func NewPostCommentResponses(rows []m.PostCommentModel) []PostCommentResponse {
	out := make([]PostCommentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewPostCommentResponse(row))
	}
	return out
}

type CommentLikeResponse struct {
	CommentLikeID        uuid.UUID `json:"comment_like_id"`
	CommentLikeCommentID uuid.UUID `json:"comment_like_comment_id"`
	CommentLikeUserID    uuid.UUID `json:"comment_like_user_id"`
	CommentLikeIsLiked   bool      `json:"comment_like_is_liked"`
}

func NewCommentLikeResponse(mdl m.CommentLikeModel) CommentLikeResponse {
	return CommentLikeResponse{
		CommentLikeID:        mdl.CommentLikeID,
		CommentLikeCommentID: mdl.CommentLikeCommentID,
		CommentLikeUserID:    mdl.CommentLikeUserID,
		CommentLikeIsLiked:   mdl.CommentLikeIsLiked,
	}
}
