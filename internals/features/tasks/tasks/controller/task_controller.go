// file: internals/features/tasks/tasks/controller/task_controller.go
package controller

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "mentorku_backend/internals/features/tasks/tasks/model"
	helper "mentorku_backend/internals/helpers"
)

type TaskController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db, Validator: validator.New()}
}

type createTaskRequest struct {
	TaskTitle       string  `json:"task_title" validate:"required,max=255"`
	TaskObjective   *string `json:"task_objective" validate:"omitempty"`
	TaskDescription *string `json:"task_description" validate:"omitempty"`
	TaskDuration    *string `json:"task_duration" validate:"omitempty,max=50"`
	TaskIconURL     *string `json:"task_icon_url" validate:"omitempty,url"`
	TaskLink        *string `json:"task_link" validate:"omitempty,url"`
}

// POST /api/task  (admin)
func (ctl *TaskController) Create(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	task := model.TaskModel{
		TaskTitle:       req.TaskTitle,
		TaskObjective:   req.TaskObjective,
		TaskDescription: req.TaskDescription,
		TaskDuration:    req.TaskDuration,
		TaskIconURL:     req.TaskIconURL,
		TaskLink:        req.TaskLink,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat task")
	}
	return helper.JsonCreated(c, "Task dibuat", task)
}

// GET /api/task
func (ctl *TaskController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).Model(&model.TaskModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil task")
	}

	var rows []model.TaskModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("task_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil task")
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/task/:id
func (ctl *TaskController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var task model.TaskModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&task, "task_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Task Not Found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil task")
	}
	return helper.JsonOK(c, "ok", task)
}
