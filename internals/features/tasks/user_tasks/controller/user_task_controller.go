// file: internals/features/tasks/user_tasks/controller/user_task_controller.go
package controller

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "mentorku_backend/internals/features/tasks/user_tasks/dto"
	service "mentorku_backend/internals/features/tasks/user_tasks/service"
	helper "mentorku_backend/internals/helpers"
)

/* ==============================
   Controller
============================== */

type UserTaskController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Assignments *service.AssignmentService
	Reviews     *service.ReviewService
}

func NewUserTaskController(db *gorm.DB) *UserTaskController {
	return &UserTaskController{
		DB:          db,
		Validator:   validator.New(),
		Assignments: service.NewAssignmentService(db),
		Reviews:     service.NewReviewService(db),
	}
}

/* ==============================
   Handlers
============================== */

// POST /api/user/task/assign  (admin)
// Batch assign: duplikat dan task yang sudah ada di-merge, status lama aman.
func (ctl *UserTaskController) AssignTasks(c *fiber.Ctx) error {
	var req dto.AssignTasksRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rows, err := ctl.Assignments.AssignTasks(c.Context(), req.UserID, req.TaskIDs())
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Task Not Found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan penugasan")
	}

	return helper.JsonCreated(c, "Penugasan tersimpan", dto.NewUserTaskDocumentResponse(req.UserID, rows))
}

// GET /api/user/task/:user_id
// Kompatibilitas klien lama: user tanpa penugasan tetap 200 dengan body error.
func (ctl *UserTaskController) GetUserTasks(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	rows, err := ctl.Assignments.GetForUser(c.Context(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penugasan")
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"error": "Task Not Found"})
	}

	return helper.JsonOK(c, "ok", dto.NewUserTaskDocumentResponse(userID, rows))
}

// PATCH /api/user/task/update/status
func (ctl *UserTaskController) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.Reviews.UpdateStatus(c.Context(), req.UserID, req.TaskID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, "Status harus approved atau rejected")
		case errors.Is(err, service.ErrAssignmentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Penugasan tidak ditemukan")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status")
		}
	}

	return helper.JsonUpdated(c, "Status diperbarui", fiber.Map{
		"user_id": req.UserID,
		"task_id": req.TaskID,
		"status":  req.Status,
	})
}

// PATCH /api/user/task/update/verdict  (admin)
// Verdict menyentuh submission terakhir + progres assignment sekaligus.
func (ctl *UserTaskController) UpdateVerdict(c *fiber.Ctx) error {
	var req dto.UpdateTaskVerdictRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.Reviews.UpdateVerdict(c.Context(), req.UserID, req.TaskID, req.Status, req.Grade, req.Remark); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, "Status harus approved atau rejected")
		case errors.Is(err, service.ErrRemarkRequired):
			return helper.JsonError(c, fiber.StatusBadRequest, "Remark wajib diisi")
		case errors.Is(err, service.ErrGradeRequired):
			return helper.JsonError(c, fiber.StatusBadRequest, "Grade wajib diisi saat approved")
		case errors.Is(err, service.ErrSubmissionNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Submission aktif tidak ditemukan")
		case errors.Is(err, service.ErrAssignmentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Penugasan tidak ditemukan")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan verdict")
		}
	}

	return helper.JsonUpdated(c, "Verdict tersimpan", fiber.Map{
		"user_id": req.UserID,
		"task_id": req.TaskID,
		"status":  req.Status,
	})
}
