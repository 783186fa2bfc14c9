// file: internals/features/tasks/user_tasks/dto/user_task_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "mentorku_backend/internals/features/tasks/user_tasks/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type AssignTaskItem struct {
	TaskID uuid.UUID `json:"task_id" validate:"required"`
}

// Penugasan batch: daftar task untuk satu user. Duplikat & task yang
// sudah ter-assign akan di-merge (status lama dipertahankan).
type AssignTasksRequest struct {
	UserID uuid.UUID        `json:"user_id" validate:"required"`
	Tasks  []AssignTaskItem `json:"tasks" validate:"required,min=1,dive"`
}

func (r AssignTasksRequest) TaskIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		ids = append(ids, t.TaskID)
	}
	return ids
}

// Review tahap 1: hanya status (approved/rejected).
type UpdateTaskStatusRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	TaskID uuid.UUID `json:"task_id" validate:"required"`
	Status string    `json:"status" validate:"required"`
}

// Review tahap 2: status + grade + remark. Grade wajib saat approved,
// remark selalu wajib.
type UpdateTaskVerdictRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	TaskID uuid.UUID `json:"task_id" validate:"required"`
	Status string    `json:"status" validate:"required"`
	Grade  string    `json:"grade"`
	Remark string    `json:"remark"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type UserTaskAssignmentResponse struct {
	UserTaskID     uuid.UUID        `json:"user_task_id"`
	UserTaskTaskID uuid.UUID        `json:"user_task_task_id"`
	UserTaskStatus m.UserTaskStatus `json:"user_task_status"`

	UserTaskCreatedAt time.Time `json:"user_task_created_at"`
	UserTaskUpdatedAt time.Time `json:"user_task_updated_at"`
}

// Bentuk "dokumen" per user: user_id + daftar tugasnya.
type UserTaskDocumentResponse struct {
	UserID uuid.UUID                    `json:"user_id"`
	Tasks  []UserTaskAssignmentResponse `json:"tasks"`
}

func NewUserTaskAssignmentResponse(mdl m.UserTaskAssignmentModel) UserTaskAssignmentResponse {
	return UserTaskAssignmentResponse{
		UserTaskID:        mdl.UserTaskID,
		UserTaskTaskID:    mdl.UserTaskTaskID,
		UserTaskStatus:    mdl.UserTaskStatus,
		UserTaskCreatedAt: mdl.UserTaskCreatedAt,
		UserTaskUpdatedAt: mdl.UserTaskUpdatedAt,
	}
}

func NewUserTaskDocumentResponse(userID uuid.UUID, rows []m.UserTaskAssignmentModel) UserTaskDocumentResponse {
	tasks := make([]UserTaskAssignmentResponse, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, NewUserTaskAssignmentResponse(row))
	}
	return UserTaskDocumentResponse{UserID: userID, Tasks: tasks}
}
