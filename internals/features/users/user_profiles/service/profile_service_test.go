package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mentorku_backend/internals/features/users/user_profiles/model"
	"mentorku_backend/internals/helpers/storage"
)

type ProfileServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	storage  *storage.Storage
	profiles *ProfileService
}

func (s *ProfileServiceSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&model.UserProfileModel{}))

	st, err := storage.NewStorage(s.T().TempDir())
	s.Require().NoError(err)

	s.db = db
	s.ctx = context.Background()
	s.storage = st
	s.profiles = NewProfileService(db, st)
}

func (s *ProfileServiceSuite) stage(name string) string {
	p := storage.StagingDir + "/" + name
	full := filepath.Join(s.storage.Root, filepath.FromSlash(strings.TrimPrefix(p, "/")))
	s.Require().NoError(os.MkdirAll(filepath.Dir(full), 0o755))
	s.Require().NoError(os.WriteFile(full, []byte("isi"), 0o644))
	return p
}

func (s *ProfileServiceSuite) fileExists(publicPath string) bool {
	full := filepath.Join(s.storage.Root, filepath.FromSlash(strings.TrimPrefix(publicPath, "/")))
	_, err := os.Stat(full)
	return err == nil
}

func (s *ProfileServiceSuite) TestUpsertCreatesProfile() {
	userID := uuid.New()
	name := "Budi"
	bio := "pembelajar"

	profile, err := s.profiles.Upsert(s.ctx, UpsertProfileInput{
		UserID: userID,
		Name:   &name,
		Bio:    &bio,
	})
	s.Require().NoError(err)
	s.Equal(userID, profile.UserProfileUserID)
	s.Equal("Budi", *profile.UserProfileName)
	s.Equal("pembelajar", *profile.UserProfileBio)
}

func (s *ProfileServiceSuite) TestUpsertPartialKeepsOtherFields() {
	userID := uuid.New()
	name := "Budi"
	bio := "pembelajar"
	_, err := s.profiles.Upsert(s.ctx, UpsertProfileInput{UserID: userID, Name: &name, Bio: &bio})
	s.Require().NoError(err)

	newName := "Budi Santoso"
	profile, err := s.profiles.Upsert(s.ctx, UpsertProfileInput{UserID: userID, Name: &newName})
	s.Require().NoError(err)
	s.Equal("Budi Santoso", *profile.UserProfileName)
	s.Equal("pembelajar", *profile.UserProfileBio)
}

func (s *ProfileServiceSuite) TestUpsertReplacingAvatarDeletesOldFiles() {
	userID := uuid.New()
	oldOrig := s.stage("lama.png")
	oldComp := s.stage("lama-compressed.webp")

	_, err := s.profiles.Upsert(s.ctx, UpsertProfileInput{
		UserID: userID,
		Avatar: &storage.ImagePair{Original: oldOrig, Compressed: oldComp},
	})
	s.Require().NoError(err)

	newOrig := s.stage("baru.png")
	profile, err := s.profiles.Upsert(s.ctx, UpsertProfileInput{
		UserID: userID,
		Avatar: &storage.ImagePair{Original: newOrig, Compressed: newOrig},
	})
	s.Require().NoError(err)

	s.False(s.fileExists(oldOrig))
	s.False(s.fileExists(oldComp))
	s.Equal(newOrig, storage.DecodeImagePair(profile.UserProfileAvatar).Original)
}

func (s *ProfileServiceSuite) TestGetByUserIDNotFound() {
	_, err := s.profiles.GetByUserID(s.ctx, uuid.New())
	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *ProfileServiceSuite) TestRelocateMediaMovesAvatarAndBanner() {
	userID := uuid.New()
	av := s.stage("avatar.png")
	bn := s.stage("banner.png")

	_, err := s.profiles.Upsert(s.ctx, UpsertProfileInput{
		UserID: userID,
		Avatar: &storage.ImagePair{Original: av, Compressed: av},
		Banner: &storage.ImagePair{Original: bn, Compressed: bn},
	})
	s.Require().NoError(err)

	sum, err := s.profiles.RelocateMedia(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(1, sum.Updated)

	profile, err := s.profiles.GetByUserID(s.ctx, userID)
	s.Require().NoError(err)
	dir := storage.ProfileMainDir(userID.String())
	s.Equal(dir+"/avatar.png", storage.DecodeImagePair(profile.UserProfileAvatar).Original)
	s.Equal(dir+"/banner.png", storage.DecodeImagePair(profile.UserProfileBanner).Original)

	// run kedua idempotent
	sum, err = s.profiles.RelocateMedia(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(0, sum.Moved)
	s.Equal(0, sum.Updated)
}

func (s *ProfileServiceSuite) TestRelocateMediaNoProfileIsNoop() {
	sum, err := s.profiles.RelocateMedia(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Zero(sum.Moved)
	s.Zero(sum.Updated)
}

func TestProfileServiceSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceSuite))
}
