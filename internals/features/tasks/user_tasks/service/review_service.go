// file: internals/features/tasks/user_tasks/service/review_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mentorku_backend/internals/features/tasks/user_tasks/model"
)

// ReviewService menerapkan keputusan review ke Submission + Assignment
// secara lockstep. Keduanya di-update dalam satu transaksi DB; ini
// keputusan desain yang disengaja (lihat DESIGN.md): dua write terpisah
// bisa meninggalkan status yang tidak konsisten kalau proses mati di
// tengah. Submission adalah source of truth verdict.
type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

func normalizeReviewStatus(status string) (model.TaskSubmissionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(model.TaskSubmissionStatusApproved):
		return model.TaskSubmissionStatusApproved, nil
	case string(model.TaskSubmissionStatusRejected):
		return model.TaskSubmissionStatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

// UpdateStatus: update status sederhana (approved/rejected, case-insensitive)
// untuk submission aktif terakhir + entry assignment-nya.
// ErrAssignmentNotFound bila pasangan (user, task) tidak ada di assignment.
func (s *ReviewService) UpdateStatus(ctx context.Context, userID, taskID uuid.UUID, status string) error {
	st, err := normalizeReviewStatus(status)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// submission rejected tidak pernah di-retarget ulang
		if err := tx.Model(&model.TaskSubmissionModel{}).
			Where("submission_user_id = ? AND submission_task_id = ? AND submission_status <> ?",
				userID, taskID, model.TaskSubmissionStatusRejected).
			Update("submission_status", st).Error; err != nil {
			return err
		}

		res := tx.Model(&model.UserTaskAssignmentModel{}).
			Where("user_task_user_id = ? AND user_task_task_id = ?", userID, taskID).
			Update("user_task_status", model.UserTaskStatus(st))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAssignmentNotFound
		}
		return nil
	})
}

// UpdateVerdict: verdict lengkap reviewer. Remark wajib selalu; grade wajib
// tambahan saat approved. Submission + assignment berubah bersama atau
// tidak sama sekali.
func (s *ReviewService) UpdateVerdict(ctx context.Context, userID, taskID uuid.UUID, status, grade, remark string) error {
	st, err := normalizeReviewStatus(status)
	if err != nil {
		return err
	}
	remark = strings.TrimSpace(remark)
	grade = strings.TrimSpace(grade)
	if remark == "" {
		return ErrRemarkRequired
	}
	if st == model.TaskSubmissionStatusApproved && grade == "" {
		return ErrGradeRequired
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub model.TaskSubmissionModel
		err := tx.
			Where("submission_user_id = ? AND submission_task_id = ? AND submission_status <> ?",
				userID, taskID, model.TaskSubmissionStatusRejected).
			Order("submission_created_at DESC").
			First(&sub).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrSubmissionNotFound
			}
			return err
		}

		sub.SubmissionStatus = st
		sub.SubmissionRemark = &remark
		if grade != "" {
			sub.SubmissionGrade = &grade
		}
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}

		res := tx.Model(&model.UserTaskAssignmentModel{}).
			Where("user_task_user_id = ? AND user_task_task_id = ?", userID, taskID).
			Update("user_task_status", model.UserTaskStatus(st))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAssignmentNotFound
		}
		return nil
	})
}
