// file: internals/features/posts/posts/controller/post_controller.go
package controller

import (
	"errors"
	"log"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "mentorku_backend/internals/features/posts/posts/dto"
	service "mentorku_backend/internals/features/posts/posts/service"
	helper "mentorku_backend/internals/helpers"
	"mentorku_backend/internals/helpers/storage"
)

/* ==============================
   Controller
============================== */

type PostController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   *storage.Storage
	Posts     *service.PostService
	Likes     *service.LikeService
}

func NewPostController(db *gorm.DB, st *storage.Storage) *PostController {
	return &PostController{
		DB:        db,
		Validator: validator.New(),
		Storage:   st,
		Posts:     service.NewPostService(db, st),
		Likes:     service.NewLikeService(db),
	}
}

// collectImages simpan images[] multipart ke staging, dengan guard jumlah.
func (ctl *PostController) collectImages(c *fiber.Ctx, existing int) ([]storage.ImagePair, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Bukan multipart: request JSON tanpa gambar, itu sah.
		return nil, nil
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		return nil, nil
	}
	if existing+len(headers) > service.MaxImagesPerPost {
		return nil, service.ErrTooManyImages
	}

	images := make([]storage.ImagePair, 0, len(headers))
	for _, fh := range headers {
		pair, err := ctl.Storage.SaveImageStaged(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, pair)
	}
	return images, nil
}

func (ctl *PostController) relocateAfterWrite(c *fiber.Ctx, userID string) {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return
	}
	if sum, err := ctl.Posts.RelocateImages(c.Context(), uid); err != nil {
		log.Printf("[post] relokasi media user %s gagal: %v", userID, err)
	} else if sum.Moved > 0 || sum.Skipped > 0 {
		log.Printf("[post] relokasi media user %s: moved=%d skipped=%d updated=%d",
			userID, sum.Moved, sum.Skipped, sum.Updated)
	}
}

/* ==============================
   Handlers
============================== */

// POST /api/post  (multipart: post_text, images[] maks 5)
func (ctl *PostController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	images, err := ctl.collectImages(c, 0)
	if err != nil {
		if errors.Is(err, service.ErrTooManyImages) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 5 gambar per post")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan gambar")
	}

	text := ""
	if req.PostText != nil {
		text = *req.PostText
	}
	post, err := ctl.Posts.Create(c.Context(), service.CreatePostInput{
		UserID: userID,
		Text:   text,
		Images: images,
	})
	if err != nil {
		if errors.Is(err, service.ErrTooManyImages) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 5 gambar per post")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat post")
	}

	ctl.relocateAfterWrite(c, userID.String())

	fresh, ferr := ctl.Posts.GetByID(c.Context(), post.PostID)
	if ferr != nil {
		fresh = post
	}
	return helper.JsonCreated(c, "Post dibuat", dto.NewPostResponse(*fresh))
}

// POST /api/post/from-task
// Bridge: submission approved -> post publik. Gambar by-reference.
func (ctl *PostController) CreateFromTask(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return fiberErrToJson(c, err)
	}

	var req dto.CreatePostFromTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	post, err := ctl.Posts.PublishFromSubmission(c.Context(), req.SubmissionID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrIncorrectSubmission) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Incorrect Submission")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mempublikasikan submission")
	}
	return helper.JsonCreated(c, "Submission dipublikasikan", dto.NewPostResponse(*post))
}

// GET /api/post/:id
func (ctl *PostController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	post, err := ctl.Posts.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil post")
	}
	return helper.JsonOK(c, "ok", dto.NewPostResponse(*post))
}

// GET /api/post/by-user/:user_id
func (ctl *PostController) ListByUser(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Posts.ListByUser(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil post")
	}
	return helper.JsonList(c, "ok", dto.NewPostResponses(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// PATCH /api/post/:id  (pemilik; multipart untuk tambah gambar)
func (ctl *PostController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	existing, err := ctl.Posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil post")
	}

	addImages, err := ctl.collectImages(c, len(storage.DecodeImagePairs(existing.PostImages)))
	if err != nil {
		if errors.Is(err, service.ErrTooManyImages) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 5 gambar per post")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan gambar")
	}

	post, err := ctl.Posts.Update(c.Context(), postID, actorID, service.UpdatePostInput{
		Text:      req.PostText,
		AddImages: addImages,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		case errors.Is(err, service.ErrNotPostOwner):
			return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik post")
		case errors.Is(err, service.ErrTooManyImages):
			return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 5 gambar per post")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui post")
		}
	}

	ctl.relocateAfterWrite(c, actorID.String())
	return helper.JsonUpdated(c, "Post diperbarui", dto.NewPostResponse(*post))
}

// DELETE /api/post/:id  (pemilik atau admin)
// Post tipe task: file bukti tetap milik submission, is_posted direset.
// Post umum: file di disk ikut dihapus.
func (ctl *PostController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	if err := ctl.Posts.Delete(c.Context(), postID, actorID, helper.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		case errors.Is(err, service.ErrNotPostOwner):
			return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik post")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus post")
		}
	}
	return helper.JsonDeleted(c, "Post dihapus", fiber.Map{"post_id": postID})
}

// PATCH /api/post/:id/privacy  (pemilik, toggle)
func (ctl *PostController) TogglePrivacy(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	post, err := ctl.Posts.SetPrivacy(c.Context(), postID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		case errors.Is(err, service.ErrNotPostOwner):
			return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik post")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah privasi post")
		}
	}
	return helper.JsonUpdated(c, "Privasi post diubah", dto.NewPostResponse(*post))
}

// PATCH /api/post/:id/moderate  (admin)
func (ctl *PostController) Moderate(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.ModeratePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	post, err := ctl.Posts.SetModerationStatus(c.Context(), postID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		case errors.Is(err, service.ErrInvalidPostStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, "Status harus approved atau rejected")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memoderasi post")
		}
	}
	return helper.JsonUpdated(c, "Post dimoderasi", dto.NewPostResponse(*post))
}

// POST /api/post/:id/like  (toggle idempotent)
func (ctl *PostController) ToggleLike(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiberErrToJson(c, err)
	}
	postID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	like, err := ctl.Likes.TogglePostLike(c.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses like")
	}

	total, _ := ctl.Likes.CountPostLikes(c.Context(), postID)
	return helper.JsonOK(c, "ok", fiber.Map{
		"like":        dto.NewPostLikeResponse(*like),
		"total_likes": total,
	})
}

/* ==============================
   Small helpers
============================== */

func fiberErrToJson(c *fiber.Ctx, err error) error {
	fe := &fiber.Error{}
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
}
