// file: internals/features/tasks/user_tasks/dto/task_submission_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "mentorku_backend/internals/features/tasks/user_tasks/model"
	"mentorku_backend/internals/helpers/storage"
)

/* =========================================================
 * RESPONSES
 * ========================================================= */

type TaskSubmissionResponse struct {
	SubmissionID     uuid.UUID `json:"submission_id"`
	SubmissionUserID uuid.UUID `json:"submission_user_id"`
	SubmissionTaskID uuid.UUID `json:"submission_task_id"`

	SubmissionMessage *string `json:"submission_message,omitempty"`

	SubmissionImages []storage.ImagePair `json:"submission_images"`
	SubmissionFiles  []storage.FileRef   `json:"submission_files"`

	SubmissionStatus   m.TaskSubmissionStatus `json:"submission_status"`
	SubmissionIsPosted bool                   `json:"submission_is_posted"`

	SubmissionGrade  *string `json:"submission_grade,omitempty"`
	SubmissionRemark *string `json:"submission_remark,omitempty"`

	SubmissionCreatedAt time.Time `json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `json:"submission_updated_at"`
}

func NewTaskSubmissionResponse(mdl m.TaskSubmissionModel) TaskSubmissionResponse {
	return TaskSubmissionResponse{
		SubmissionID:        mdl.SubmissionID,
		SubmissionUserID:    mdl.SubmissionUserID,
		SubmissionTaskID:    mdl.SubmissionTaskID,
		SubmissionMessage:   mdl.SubmissionMessage,
		SubmissionImages:    storage.DecodeImagePairs(mdl.SubmissionImages),
		SubmissionFiles:     storage.DecodeFileRefs(mdl.SubmissionFiles),
		SubmissionStatus:    mdl.SubmissionStatus,
		SubmissionIsPosted:  mdl.SubmissionIsPosted,
		SubmissionGrade:     mdl.SubmissionGrade,
		SubmissionRemark:    mdl.SubmissionRemark,
		SubmissionCreatedAt: mdl.SubmissionCreatedAt,
		SubmissionUpdatedAt: mdl.SubmissionUpdatedAt,
	}
}

func NewTaskSubmissionResponses(rows []m.TaskSubmissionModel) []TaskSubmissionResponse {
	out := make([]TaskSubmissionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewTaskSubmissionResponse(row))
	}
	return out
}
