// file: internals/features/users/user_profiles/service/profile_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mentorku_backend/internals/features/users/user_profiles/model"
	"mentorku_backend/internals/helpers/storage"
)

var ErrProfileNotFound = errors.New("profil tidak ditemukan")

type ProfileService struct {
	DB      *gorm.DB
	Storage *storage.Storage
}

func NewProfileService(db *gorm.DB, st *storage.Storage) *ProfileService {
	return &ProfileService{DB: db, Storage: st}
}

type UpsertProfileInput struct {
	UserID uuid.UUID
	Name   *string
	Bio    *string
	// pasangan staging baru; nil = tidak diganti
	Avatar *storage.ImagePair
	Banner *storage.ImagePair
}

// Upsert membuat / memperbarui profil. Avatar/banner lama yang diganti
// dihapus dari storage best-effort setelah record tersimpan.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*model.UserProfileModel, error) {
	var profile model.UserProfileModel
	err := s.DB.WithContext(ctx).
		Where("user_profile_user_id = ?", in.UserID).
		First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == gorm.ErrRecordNotFound {
		profile = model.UserProfileModel{UserProfileUserID: in.UserID}
	}

	var replaced []string
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		profile.UserProfileName = &name
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		profile.UserProfileBio = &bio
	}
	if in.Avatar != nil {
		if old := storage.DecodeImagePair(profile.UserProfileAvatar); old != nil {
			replaced = append(replaced, old.Original, old.Compressed)
		}
		profile.UserProfileAvatar = datatypes.JSON(storage.EncodeImagePair(*in.Avatar))
	}
	if in.Banner != nil {
		if old := storage.DecodeImagePair(profile.UserProfileBanner); old != nil {
			replaced = append(replaced, old.Original, old.Compressed)
		}
		profile.UserProfileBanner = datatypes.JSON(storage.EncodeImagePair(*in.Banner))
	}

	if err := s.DB.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	for _, p := range dedupePaths(replaced) {
		if err := s.Storage.Delete(p); err != nil {
			log.Printf("[user_profiles] %v", err)
		}
	}
	return &profile, nil
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.UserProfileModel, error) {
	var profile model.UserProfileModel
	if err := s.DB.WithContext(ctx).
		Where("user_profile_user_id = ?", userID).
		First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// RelocateMedia: job relokasi avatar + banner ke /profile/<user>/main.
func (s *ProfileService) RelocateMedia(ctx context.Context, userID uuid.UUID) (storage.RelocationSummary, error) {
	var sum storage.RelocationSummary

	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		if err == ErrProfileNotFound {
			return sum, nil
		}
		return sum, err
	}

	dir := storage.ProfileMainDir(userID.String())
	changed := false

	if avatar := storage.DecodeImagePair(profile.UserProfileAvatar); avatar != nil {
		moved, c := s.Storage.RelocatePair(*avatar, dir, &sum)
		if c {
			profile.UserProfileAvatar = datatypes.JSON(storage.EncodeImagePair(moved))
			changed = true
		}
	}
	if banner := storage.DecodeImagePair(profile.UserProfileBanner); banner != nil {
		moved, c := s.Storage.RelocatePair(*banner, dir, &sum)
		if c {
			profile.UserProfileBanner = datatypes.JSON(storage.EncodeImagePair(moved))
			changed = true
		}
	}

	if !changed {
		return sum, nil
	}
	if err := s.DB.WithContext(ctx).Save(profile).Error; err != nil {
		log.Printf("[user_profiles] gagal simpan path final profil %s: %v", userID, err)
		return sum, nil
	}
	sum.Updated++
	return sum, nil
}

func dedupePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
