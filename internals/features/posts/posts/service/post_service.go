// file: internals/features/posts/posts/service/post_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mentorku_backend/internals/features/posts/posts/model"
	tasksModel "mentorku_backend/internals/features/tasks/user_tasks/model"
	"mentorku_backend/internals/helpers/storage"
)

const MaxImagesPerPost = 5

var (
	ErrPostNotFound = errors.New("post tidak ditemukan")
	// Pesan kontrak bridge: submission tidak ada / belum approved / sudah diposting.
	ErrIncorrectSubmission = errors.New("Incorrect Submission")
	ErrNotPostOwner        = errors.New("bukan pemilik post")
	ErrInvalidPostStatus   = errors.New("status post tidak valid")
	ErrTooManyImages       = errors.New("maksimal 5 gambar per post")
)

type PostService struct {
	DB      *gorm.DB
	Storage *storage.Storage
}

func NewPostService(db *gorm.DB, st *storage.Storage) *PostService {
	return &PostService{DB: db, Storage: st}
}

type CreatePostInput struct {
	UserID    uuid.UUID
	Text      string
	Images    []storage.ImagePair
	IsPrivate bool
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*model.PostModel, error) {
	if len(in.Images) > MaxImagesPerPost {
		return nil, ErrTooManyImages
	}
	post := model.PostModel{
		PostUserID:    in.UserID,
		PostImages:    datatypes.JSON(storage.EncodeImagePairs(in.Images)),
		PostStatus:    model.PostStatusPending,
		PostIsPrivate: in.IsPrivate,
		PostType:      model.PostTypeGeneral,
	}
	if txt := strings.TrimSpace(in.Text); txt != "" {
		post.PostText = &txt
	}
	if err := s.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

type UpdatePostInput struct {
	Text      *string
	AddImages []storage.ImagePair
	IsPrivate *bool
}

func (s *PostService) Update(ctx context.Context, postID, actorID uuid.UUID, in UpdatePostInput) (*model.PostModel, error) {
	post, err := s.getOwned(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		txt := strings.TrimSpace(*in.Text)
		post.PostText = &txt
	}
	if in.IsPrivate != nil {
		post.PostIsPrivate = *in.IsPrivate
	}
	if len(in.AddImages) > 0 {
		images := append(storage.DecodeImagePairs(post.PostImages), in.AddImages...)
		if len(images) > MaxImagesPerPost {
			return nil, ErrTooManyImages
		}
		post.PostImages = datatypes.JSON(storage.EncodeImagePairs(images))
	}
	if err := s.DB.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// PublishFromSubmission: bridge submission approved -> post publik.
// Gambar disalin by-reference (path yang sama, tidak ada duplikasi file);
// is_posted submission di-set true dalam transaksi yang sama dengan insert
// post. Submission yang tidak ada, belum approved, atau sudah diposting
// ditolak dengan ErrIncorrectSubmission.
func (s *PostService) PublishFromSubmission(ctx context.Context, submissionID uuid.UUID, message string) (*model.PostModel, error) {
	var post *model.PostModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub tasksModel.TaskSubmissionModel
		err := tx.Where("submission_id = ? AND submission_status = ? AND submission_is_posted = ?",
			submissionID, tasksModel.TaskSubmissionStatusApproved, false).
			First(&sub).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrIncorrectSubmission
			}
			return err
		}

		sid := sub.SubmissionID
		p := model.PostModel{
			PostUserID:       sub.SubmissionUserID,
			PostImages:       sub.SubmissionImages,
			PostStatus:       model.PostStatusApproved,
			PostType:         model.PostTypeTask,
			PostSubmissionID: &sid,
		}
		if msg := strings.TrimSpace(message); msg != "" {
			p.PostText = &msg
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		if err := tx.Model(&tasksModel.TaskSubmissionModel{}).
			Where("submission_id = ?", sid).
			Update("submission_is_posted", true).Error; err != nil {
			return err
		}
		post = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Delete (retract):
// - post_type=task: hapus post + reset is_posted submission asal; file bukti
//   TIDAK disentuh (miliknya submission, bukan post)
// - post biasa: hapus post lalu hapus file gambarnya (original + compressed)
//   best-effort dari storage
func (s *PostService) Delete(ctx context.Context, postID, actorID uuid.UUID, isAdmin bool) error {
	var post model.PostModel
	if err := s.DB.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrPostNotFound
		}
		return err
	}
	if !isAdmin && post.PostUserID != actorID {
		return ErrNotPostOwner
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// komentar + like ikut dibersihkan (like komentar dulu, sebelum
		// komentarnya sendiri hilang dari subquery)
		if err := tx.Where("comment_like_comment_id IN (?)",
			tx.Model(&model.PostCommentModel{}).
				Select("comment_id").
				Where("comment_post_id = ?", postID),
		).Delete(&model.CommentLikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_post_id = ?", postID).Delete(&model.PostCommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_like_post_id = ?", postID).Delete(&model.PostLikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.PostModel{}, "post_id = ?", postID).Error; err != nil {
			return err
		}
		if post.PostType == model.PostTypeTask && post.PostSubmissionID != nil {
			return tx.Model(&tasksModel.TaskSubmissionModel{}).
				Where("submission_id = ?", *post.PostSubmissionID).
				Update("submission_is_posted", false).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	if post.PostType != model.PostTypeTask {
		for _, img := range storage.DecodeImagePairs(post.PostImages) {
			if err := s.Storage.Delete(img.Original); err != nil {
				log.Printf("[posts] %v", err)
			}
			if img.Compressed != "" && img.Compressed != img.Original {
				if err := s.Storage.Delete(img.Compressed); err != nil {
					log.Printf("[posts] %v", err)
				}
			}
		}
	}
	return nil
}

// SetPrivacy: toggle privasi, hanya pemilik.
func (s *PostService) SetPrivacy(ctx context.Context, postID, actorID uuid.UUID) (*model.PostModel, error) {
	post, err := s.getOwned(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}
	post.PostIsPrivate = !post.PostIsPrivate
	if err := s.DB.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// SetModerationStatus: transisi status oleh admin (approved/rejected).
func (s *PostService) SetModerationStatus(ctx context.Context, postID uuid.UUID, status string) (*model.PostModel, error) {
	var st model.PostStatus
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(model.PostStatusApproved):
		st = model.PostStatusApproved
	case string(model.PostStatusRejected):
		st = model.PostStatusRejected
	default:
		return nil, ErrInvalidPostStatus
	}

	var post model.PostModel
	if err := s.DB.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post.PostStatus = st
	if err := s.DB.WithContext(ctx).Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) GetByID(ctx context.Context, postID uuid.UUID) (*model.PostModel, error) {
	var post model.PostModel
	if err := s.DB.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PostModel, int64, error) {
	var total int64
	q := s.DB.WithContext(ctx).Model(&model.PostModel{}).Where("post_user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.PostModel
	if err := s.DB.WithContext(ctx).
		Where("post_user_id = ?", userID).
		Order("post_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// RelocateImages: job relokasi gambar post biasa milik satu user.
// Post turunan task dilewati; path-nya milik submission dan dipindah oleh
// job evidence; prefix final-nya pun berbeda.
func (s *PostService) RelocateImages(ctx context.Context, userID uuid.UUID) (storage.RelocationSummary, error) {
	var sum storage.RelocationSummary

	var rows []model.PostModel
	if err := s.DB.WithContext(ctx).
		Where("post_user_id = ? AND post_type <> ?", userID, model.PostTypeTask).
		Find(&rows).Error; err != nil {
		return sum, err
	}

	dir := storage.PostImagesDir(userID.String())
	for i := range rows {
		post := &rows[i]
		changed := false

		images := storage.DecodeImagePairs(post.PostImages)
		for j := range images {
			var c bool
			images[j], c = s.Storage.RelocatePair(images[j], dir, &sum)
			changed = changed || c
		}
		if !changed {
			continue
		}
		post.PostImages = datatypes.JSON(storage.EncodeImagePairs(images))
		if err := s.DB.WithContext(ctx).Save(post).Error; err != nil {
			log.Printf("[posts] gagal simpan path final post %s: %v", post.PostID, err)
			continue
		}
		sum.Updated++
	}
	return sum, nil
}

func (s *PostService) getOwned(ctx context.Context, postID, actorID uuid.UUID) (*model.PostModel, error) {
	var post model.PostModel
	if err := s.DB.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.PostUserID != actorID {
		return nil, ErrNotPostOwner
	}
	return &post, nil
}
