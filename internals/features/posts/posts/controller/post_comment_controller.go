// file: internals/features/posts/posts/controller/post_comment_controller.go
package controller

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "mentorku_backend/internals/features/posts/posts/dto"
	service "mentorku_backend/internals/features/posts/posts/service"
	helper "mentorku_backend/internals/helpers"
)

type PostCommentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Comments  *service.CommentService
	Likes     *service.LikeService
}

func NewPostCommentController(db *gorm.DB) *PostCommentController {
	return &PostCommentController{
		DB:        db,
		Validator: validator.New(),
		Comments:  service.NewCommentService(db),
		Likes:     service.NewLikeService(db),
	}
}

/* ==============================
   Handlers
============================== */

// POST /api/post-comment
// parent_id terisi = reply; reply terhadap reply ditolak.
func (ctl *PostCommentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	comment, err := ctl.Comments.Create(c.Context(), service.CreateCommentInput{
		PostID:   req.PostID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		case errors.Is(err, service.ErrCommentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Komentar induk tidak ditemukan")
		case errors.Is(err, service.ErrReplyToReply):
			return helper.JsonError(c, fiber.StatusBadRequest, "Replying to a reply is not allowed")
		case errors.Is(err, service.ErrEmptyComment):
			return helper.JsonError(c, fiber.StatusBadRequest, "Komentar tidak boleh kosong")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan komentar")
		}
	}
	return helper.JsonCreated(c, "Komentar tersimpan", dto.NewPostCommentResponse(*comment))
}

// GET /api/post-comment/by-post/:post_id  (top-level + jumlah total)
func (ctl *PostCommentController) ListByPost(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "post_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}

	rows, err := ctl.Comments.ListByPost(c.Context(), postID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil komentar")
	}
	total, err := ctl.Comments.CountByPost(c.Context(), postID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung komentar")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"comments":       dto.NewPostCommentResponses(rows),
		"total_comments": total,
	})
}

// GET /api/post-comment/:id/replies
func (ctl *PostCommentController) ListReplies(c *fiber.Ctx) error {
	parentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	rows, err := ctl.Comments.ListReplies(c.Context(), parentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil balasan")
	}
	return helper.JsonOK(c, "ok", dto.NewPostCommentResponses(rows))
}

// DELETE /api/post-comment/:id  (pemilik atau admin)
// Hapus top-level ikut menghapus seluruh balasannya.
func (ctl *PostCommentController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}
	commentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	if err := ctl.Comments.Delete(c.Context(), commentID, actorID, helper.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Komentar tidak ditemukan")
		case errors.Is(err, service.ErrNotCommentOwner):
			return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik komentar")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus komentar")
		}
	}
	return helper.JsonDeleted(c, "Komentar dihapus", fiber.Map{"comment_id": commentID})
}

// POST /api/post-comment/:id/like  (toggle idempotent)
func (ctl *PostCommentController) ToggleLike(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}
	commentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	like, err := ctl.Likes.ToggleCommentLike(c.Context(), commentID, userID)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Komentar tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses like")
	}
	return helper.JsonOK(c, "ok", dto.NewCommentLikeResponse(*like))
}
