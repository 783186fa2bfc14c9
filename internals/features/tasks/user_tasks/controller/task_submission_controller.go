// file: internals/features/tasks/user_tasks/controller/task_submission_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "mentorku_backend/internals/features/tasks/user_tasks/dto"
	service "mentorku_backend/internals/features/tasks/user_tasks/service"
	helper "mentorku_backend/internals/helpers"
	"mentorku_backend/internals/helpers/storage"
)

type TaskSubmissionController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Storage     *storage.Storage
	Submissions *service.SubmissionService
}

func NewTaskSubmissionController(db *gorm.DB, st *storage.Storage) *TaskSubmissionController {
	return &TaskSubmissionController{
		DB:          db,
		Validator:   validator.New(),
		Storage:     st,
		Submissions: service.NewSubmissionService(db, st),
	}
}

/* ==============================
   Handlers
============================== */

// POST /api/user/task/submission  (multipart)
// Field: task_id, message, images[] (maks 5), files[] (maks 5).
// File masuk staging /upload dulu, lalu job relokasi dipicu setelah commit.
func (ctl *TaskSubmissionController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
	}

	taskID, err := uuid.Parse(strings.TrimSpace(c.FormValue("task_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "task_id tidak valid")
	}

	message := strings.TrimSpace(c.FormValue("message"))

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Form multipart tidak valid")
	}
	imageHeaders := form.File["images"]
	fileHeaders := form.File["files"]

	// Tolak sebelum ada file yang tersentuh disk.
	if len(imageHeaders) > service.MaxEvidencePerSubmission {
		return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 5 gambar per submission")
	}
	if len(fileHeaders) > service.MaxEvidencePerSubmission {
		return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 5 file per submission")
	}

	images := make([]storage.ImagePair, 0, len(imageHeaders))
	for _, fh := range imageHeaders {
		pair, err := ctl.Storage.SaveImageStaged(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan gambar")
		}
		images = append(images, pair)
	}

	files := make([]storage.FileRef, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		ref, err := ctl.Storage.SaveFileStaged(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan file")
		}
		files = append(files, ref)
	}

	sub, err := ctl.Submissions.Create(c.Context(), service.CreateSubmissionInput{
		UserID:  userID,
		TaskID:  taskID,
		Message: message,
		Images:  images,
		Files:   files,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Task Not Found")
		case errors.Is(err, service.ErrActiveSubmissionExists):
			return helper.JsonError(c, fiber.StatusConflict, "Masih ada submission aktif untuk task ini")
		case errors.Is(err, service.ErrEvidenceLimit):
			return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 5 gambar dan 5 file per submission")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan submission")
		}
	}

	// Best-effort: path staging dipindah ke folder final user. Gagal pun
	// submission sudah tersimpan, relokasi bisa diulang kapan saja.
	if sum, err := ctl.Submissions.RelocateEvidence(c.Context(), userID); err != nil {
		log.Printf("[task-submission] relokasi media user %s gagal: %v", userID, err)
	} else if sum.Moved > 0 || sum.Skipped > 0 {
		log.Printf("[task-submission] relokasi media user %s: moved=%d skipped=%d updated=%d",
			userID, sum.Moved, sum.Skipped, sum.Updated)
	}

	fresh, err := ctl.Submissions.GetByID(c.Context(), sub.SubmissionID)
	if err != nil {
		fresh = sub
	}
	return helper.JsonCreated(c, "Submission tersimpan", dto.NewTaskSubmissionResponse(*fresh))
}

// GET /api/user/task/submission/:task_id
func (ctl *TaskSubmissionController) ListByTask(c *fiber.Ctx) error {
	taskID, err := helper.ParseUUIDParam(c, "task_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "task_id tidak valid")
	}

	rows, err := ctl.Submissions.ListByTask(c.Context(), taskID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil submission")
	}
	return helper.JsonOK(c, "ok", dto.NewTaskSubmissionResponses(rows))
}

// GET /api/task-submission/:id
func (ctl *TaskSubmissionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	sub, err := ctl.Submissions.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil submission")
	}
	return helper.JsonOK(c, "ok", dto.NewTaskSubmissionResponse(*sub))
}
