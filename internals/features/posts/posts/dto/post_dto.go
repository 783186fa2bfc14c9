// file: internals/features/posts/posts/dto/post_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "mentorku_backend/internals/features/posts/posts/model"
	"mentorku_backend/internals/helpers/storage"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create post umum (JSON atau multipart; gambar diproses controller).
type CreatePostRequest struct {
	PostText *string `json:"post_text" form:"post_text" validate:"omitempty,max=2000"`
}

// Update partial: teks dan/atau tambahan gambar (multipart).
type UpdatePostRequest struct {
	PostText *string `json:"post_text" form:"post_text" validate:"omitempty,max=2000"`
}

// Publikasi submission approved jadi post (by-reference, tanpa copy file).
type CreatePostFromTaskRequest struct {
	SubmissionID uuid.UUID `json:"submission_id" validate:"required"`
	Message      string    `json:"message" validate:"omitempty,max=2000"`
}

// Moderasi: approved | rejected.
type ModeratePostRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type PostResponse struct {
	PostID     uuid.UUID `json:"post_id"`
	PostUserID uuid.UUID `json:"post_user_id"`

	PostText   *string             `json:"post_text,omitempty"`
	PostImages []storage.ImagePair `json:"post_images"`

	PostStatus    m.PostStatus `json:"post_status"`
	PostIsPrivate bool         `json:"post_is_private"`
	PostType      string       `json:"post_type"`

	PostSubmissionID *uuid.UUID `json:"post_submission_id,omitempty"`

	PostCreatedAt time.Time `json:"post_created_at"`
	PostUpdatedAt time.Time `json:"post_updated_at"`
}

func NewPostResponse(mdl m.PostModel) PostResponse {
	return PostResponse{
		PostID:           mdl.PostID,
		PostUserID:       mdl.PostUserID,
		PostText:         mdl.PostText,
		PostImages:       storage.DecodeImagePairs(mdl.PostImages),
		PostStatus:       mdl.PostStatus,
		PostIsPrivate:    mdl.PostIsPrivate,
		PostType:         mdl.PostType,
		PostSubmissionID: mdl.PostSubmissionID,
		PostCreatedAt:    mdl.PostCreatedAt,
		PostUpdatedAt:    mdl.PostUpdatedAt,
	}
}

func NewPostResponses(rows []m.PostModel) []PostResponse {
	out := make([]PostResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewPostResponse(row))
	}
	return out
}

type PostLikeResponse struct {
	PostLikeID      uuid.UUID `json:"post_like_id"`
	PostLikePostID  uuid.UUID `json:"post_like_post_id"`
	PostLikeUserID  uuid.UUID `json:"post_like_user_id"`
	PostLikeIsLiked bool      `json:"post_like_is_liked"`
}

func NewPostLikeResponse(mdl m.PostLikeModel) PostLikeResponse {
	return PostLikeResponse{
		PostLikeID:      mdl.PostLikeID,
		PostLikePostID:  mdl.PostLikePostID,
		PostLikeUserID:  mdl.PostLikeUserID,
		PostLikeIsLiked: mdl.PostLikeIsLiked,
	}
}
