// file: internals/features/tasks/user_tasks/service/submission_service.go
package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	taskModel "mentorku_backend/internals/features/tasks/tasks/model"
	"mentorku_backend/internals/features/tasks/user_tasks/model"
	"mentorku_backend/internals/helpers/storage"
)

// MaxEvidencePerSubmission: batas jumlah gambar dan jumlah file per submission.
const MaxEvidencePerSubmission = 5

type SubmissionService struct {
	DB      *gorm.DB
	Storage *storage.Storage
}

func NewSubmissionService(db *gorm.DB, st *storage.Storage) *SubmissionService {
	return &SubmissionService{DB: db, Storage: st}
}

type CreateSubmissionInput struct {
	UserID  uuid.UUID
	TaskID  uuid.UUID
	Message string
	Images  []storage.ImagePair
	Files   []storage.FileRef
}

// Create: intake submission baru.
// - maksimal 5 gambar dan 5 file
// - task harus ada di katalog
// - hanya boleh ada satu submission non-rejected per (user, task)
// - entry assignment di-flip ke 'submitted' dalam transaksi yang sama
//   (dibuat bila belum ada, supaya bukti tanpa assign eksplisit tetap tercatat)
func (s *SubmissionService) Create(ctx context.Context, in CreateSubmissionInput) (*model.TaskSubmissionModel, error) {
	if in.UserID == uuid.Nil || in.TaskID == uuid.Nil {
		return nil, ErrTaskNotFound
	}
	if len(in.Images) > MaxEvidencePerSubmission || len(in.Files) > MaxEvidencePerSubmission {
		return nil, ErrEvidenceLimit
	}

	var known int64
	if err := s.DB.WithContext(ctx).
		Model(&taskModel.TaskModel{}).
		Where("task_id = ?", in.TaskID).
		Count(&known).Error; err != nil {
		return nil, err
	}
	if known == 0 {
		return nil, ErrTaskNotFound
	}

	var active int64
	if err := s.DB.WithContext(ctx).
		Model(&model.TaskSubmissionModel{}).
		Where("submission_user_id = ? AND submission_task_id = ? AND submission_status <> ?",
			in.UserID, in.TaskID, model.TaskSubmissionStatusRejected).
		Count(&active).Error; err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrActiveSubmissionExists
	}

	sub := model.TaskSubmissionModel{
		SubmissionUserID: in.UserID,
		SubmissionTaskID: in.TaskID,
		SubmissionStatus: model.TaskSubmissionStatusSubmitted,
		SubmissionImages: datatypes.JSON(storage.EncodeImagePairs(in.Images)),
		SubmissionFiles:  datatypes.JSON(storage.EncodeFileRefs(in.Files)),
	}
	if msg := strings.TrimSpace(in.Message); msg != "" {
		sub.SubmissionMessage = &msg
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		res := tx.Model(&model.UserTaskAssignmentModel{}).
			Where("user_task_user_id = ? AND user_task_task_id = ?", in.UserID, in.TaskID).
			Update("user_task_status", model.UserTaskStatusSubmitted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			row := model.UserTaskAssignmentModel{
				UserTaskUserID: in.UserID,
				UserTaskTaskID: in.TaskID,
				UserTaskStatus: model.UserTaskStatusSubmitted,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_task_user_id"}, {Name: "user_task_task_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"user_task_status": model.UserTaskStatusSubmitted,
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByTask: semua submission untuk satu task (untuk reviewer).
func (s *SubmissionService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.TaskSubmissionModel, error) {
	var rows []model.TaskSubmissionModel
	if err := s.DB.WithContext(ctx).
		Where("submission_task_id = ?", taskID).
		Order("submission_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID mengambil satu submission.
func (s *SubmissionService) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskSubmissionModel, error) {
	var sub model.TaskSubmissionModel
	if err := s.DB.WithContext(ctx).
		Where("submission_id = ?", id).
		First(&sub).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// RelocateEvidence: job relokasi bukti submission milik satu user.
// Semua submission user di-scan; tiap path gambar/file dipindah dari staging
// ke prefix final. Record disimpan ulang hanya bila minimal satu path
// berubah. Kegagalan per file diisolasi (OutcomeSkipped), batch jalan terus.
func (s *SubmissionService) RelocateEvidence(ctx context.Context, userID uuid.UUID) (storage.RelocationSummary, error) {
	var sum storage.RelocationSummary

	var rows []model.TaskSubmissionModel
	if err := s.DB.WithContext(ctx).
		Where("submission_user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return sum, err
	}

	imgDir := storage.SubmissionImagesDir(userID.String())
	fileDir := storage.SubmissionFilesDir(userID.String())

	for i := range rows {
		sub := &rows[i]
		changed := false

		images := storage.DecodeImagePairs(sub.SubmissionImages)
		for j := range images {
			var c bool
			images[j], c = s.Storage.RelocatePair(images[j], imgDir, &sum)
			changed = changed || c
		}

		files := storage.DecodeFileRefs(sub.SubmissionFiles)
		for j := range files {
			var c bool
			files[j], c = s.Storage.RelocateFile(files[j], fileDir, &sum)
			changed = changed || c
		}

		if !changed {
			continue
		}
		sub.SubmissionImages = datatypes.JSON(storage.EncodeImagePairs(images))
		sub.SubmissionFiles = datatypes.JSON(storage.EncodeFileRefs(files))
		if err := s.DB.WithContext(ctx).Save(sub).Error; err != nil {
			// file sudah pindah; path final akan diturunkan ulang di trigger
			// berikutnya (nama file sama => tujuan sama)
			log.Printf("[user_tasks] gagal simpan path final submission %s: %v", sub.SubmissionID, err)
			continue
		}
		sum.Updated++
	}
	return sum, nil
}
