// file: internals/features/tasks/user_tasks/service/assignment_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	taskModel "mentorku_backend/internals/features/tasks/tasks/model"
	"mentorku_backend/internals/features/tasks/user_tasks/model"
)

// AssignmentService memiliki daftar tugas ter-assign per user.
type AssignmentService struct {
	DB *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db}
}

// AssignTasks merge task_ids ke daftar assignment user:
// - task yang sudah ada dibiarkan (status lama utuh, termasuk approved/rejected)
// - task baru masuk dengan status 'assign'
// Semua task harus ada di katalog; kalau ada yang tidak dikenal seluruh
// operasi ditolak dengan ErrTaskNotFound.
func (s *AssignmentService) AssignTasks(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID) ([]model.UserTaskAssignmentModel, error) {
	if userID == uuid.Nil || len(taskIDs) == 0 {
		return nil, ErrTaskNotFound
	}

	var known int64
	if err := s.DB.WithContext(ctx).
		Model(&taskModel.TaskModel{}).
		Where("task_id IN ?", taskIDs).
		Count(&known).Error; err != nil {
		return nil, err
	}
	if known != int64(len(dedupe(taskIDs))) {
		return nil, ErrTaskNotFound
	}

	rows := make([]model.UserTaskAssignmentModel, 0, len(taskIDs))
	for _, tid := range dedupe(taskIDs) {
		rows = append(rows, model.UserTaskAssignmentModel{
			UserTaskUserID: userID,
			UserTaskTaskID: tid,
			UserTaskStatus: model.UserTaskStatusAssign,
		})
	}

	// ON CONFLICT DO NOTHING: baris yang sudah ada tidak disentuh sama sekali
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_task_user_id"}, {Name: "user_task_task_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	return s.GetForUser(ctx, userID)
}

// GetForUser mengembalikan daftar assignment user, urut sesuai waktu assign.
// Slice kosong berarti "belum ada assignment" (bukan error); caller yang
// memutuskan mau kirim sentinel "Task Not Found".
func (s *AssignmentService) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.UserTaskAssignmentModel, error) {
	var rows []model.UserTaskAssignmentModel
	if err := s.DB.WithContext(ctx).
		Where("user_task_user_id = ?", userID).
		Order("user_task_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SetStatus: point update satu entry assignment.
func (s *AssignmentService) SetStatus(ctx context.Context, userID, taskID uuid.UUID, status model.UserTaskStatus) error {
	res := s.DB.WithContext(ctx).
		Model(&model.UserTaskAssignmentModel{}).
		Where("user_task_user_id = ? AND user_task_task_id = ?", userID, taskID).
		Update("user_task_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
