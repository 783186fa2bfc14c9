package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mentorku_backend/internals/features/posts/posts/model"
	taskModel "mentorku_backend/internals/features/tasks/tasks/model"
	userTaskModel "mentorku_backend/internals/features/tasks/user_tasks/model"
	userTaskService "mentorku_backend/internals/features/tasks/user_tasks/service"
	"mentorku_backend/internals/helpers/storage"
)

type PostServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	storage  *storage.Storage
	posts    *PostService
	comments *CommentService
	likes    *LikeService
}

func (s *PostServiceSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&taskModel.TaskModel{},
		&userTaskModel.UserTaskAssignmentModel{},
		&userTaskModel.TaskSubmissionModel{},
		&model.PostModel{},
		&model.PostLikeModel{},
		&model.PostCommentModel{},
		&model.CommentLikeModel{},
	))

	st, err := storage.NewStorage(s.T().TempDir())
	s.Require().NoError(err)

	s.db = db
	s.ctx = context.Background()
	s.storage = st
	s.posts = NewPostService(db, st)
	s.comments = NewCommentService(db)
	s.likes = NewLikeService(db)
}

func (s *PostServiceSuite) stage(name string) string {
	p := storage.StagingDir + "/" + name
	full := filepath.Join(s.storage.Root, filepath.FromSlash(strings.TrimPrefix(p, "/")))
	s.Require().NoError(os.MkdirAll(filepath.Dir(full), 0o755))
	s.Require().NoError(os.WriteFile(full, []byte("isi"), 0o644))
	return p
}

func (s *PostServiceSuite) fileExists(publicPath string) bool {
	full := filepath.Join(s.storage.Root, filepath.FromSlash(strings.TrimPrefix(publicPath, "/")))
	_, err := os.Stat(full)
	return err == nil
}

func (s *PostServiceSuite) createSubmission(userID uuid.UUID, status userTaskModel.TaskSubmissionStatus, images []storage.ImagePair) userTaskModel.TaskSubmissionModel {
	task := taskModel.TaskModel{TaskTitle: "Tugas"}
	s.Require().NoError(s.db.Create(&task).Error)

	sub := userTaskModel.TaskSubmissionModel{
		SubmissionUserID: userID,
		SubmissionTaskID: task.TaskID,
		SubmissionStatus: status,
		SubmissionImages: datatypes.JSON(storage.EncodeImagePairs(images)),
	}
	s.Require().NoError(s.db.Create(&sub).Error)
	return sub
}

/* =========================================================
 * Posts
 * ========================================================= */

func (s *PostServiceSuite) TestCreateGeneralPostStartsPending() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{
		UserID: uuid.New(),
		Text:   "halo dunia",
	})
	s.Require().NoError(err)
	s.Equal(model.PostStatusPending, post.PostStatus)
	s.Equal(model.PostTypeGeneral, post.PostType)
	s.Require().NotNil(post.PostText)
	s.Equal("halo dunia", *post.PostText)
}

func (s *PostServiceSuite) TestCreatePostImageCap() {
	images := make([]storage.ImagePair, MaxImagesPerPost+1)
	_, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New(), Images: images})
	s.ErrorIs(err, ErrTooManyImages)
}

func (s *PostServiceSuite) TestUpdateOnlyOwner() {
	owner := uuid.New()
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: owner, Text: "asli"})
	s.Require().NoError(err)

	txt := "diubah"
	_, err = s.posts.Update(s.ctx, post.PostID, uuid.New(), UpdatePostInput{Text: &txt})
	s.ErrorIs(err, ErrNotPostOwner)

	updated, err := s.posts.Update(s.ctx, post.PostID, owner, UpdatePostInput{Text: &txt})
	s.Require().NoError(err)
	s.Equal("diubah", *updated.PostText)
}

func (s *PostServiceSuite) TestSetPrivacyToggles() {
	owner := uuid.New()
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: owner})
	s.Require().NoError(err)
	s.False(post.PostIsPrivate)

	p1, err := s.posts.SetPrivacy(s.ctx, post.PostID, owner)
	s.Require().NoError(err)
	s.True(p1.PostIsPrivate)

	p2, err := s.posts.SetPrivacy(s.ctx, post.PostID, owner)
	s.Require().NoError(err)
	s.False(p2.PostIsPrivate)
}

func (s *PostServiceSuite) TestSetModerationStatus() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)

	_, err = s.posts.SetModerationStatus(s.ctx, post.PostID, "archived")
	s.ErrorIs(err, ErrInvalidPostStatus)

	approved, err := s.posts.SetModerationStatus(s.ctx, post.PostID, "approved")
	s.Require().NoError(err)
	s.Equal(model.PostStatusApproved, approved.PostStatus)
}

/* =========================================================
 * Publish bridge (submission -> post)
 * ========================================================= */

func (s *PostServiceSuite) TestPublishFromSubmission() {
	userID := uuid.New()
	images := []storage.ImagePair{{Original: "/profile/u/task-submission/images/a.png", Compressed: "/profile/u/task-submission/images/a.webp"}}
	sub := s.createSubmission(userID, userTaskModel.TaskSubmissionStatusApproved, images)

	post, err := s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "sudah selesai!")
	s.Require().NoError(err)
	s.Equal(model.PostTypeTask, post.PostType)
	s.Equal(model.PostStatusApproved, post.PostStatus)
	s.Equal(userID, post.PostUserID)
	s.Require().NotNil(post.PostSubmissionID)
	s.Equal(sub.SubmissionID, *post.PostSubmissionID)

	// gambar by-reference: path identik dengan milik submission
	s.Equal(images, storage.DecodeImagePairs(post.PostImages))

	var fresh userTaskModel.TaskSubmissionModel
	s.Require().NoError(s.db.First(&fresh, "submission_id = ?", sub.SubmissionID).Error)
	s.True(fresh.SubmissionIsPosted)
}

func (s *PostServiceSuite) TestPublishRequiresApproved() {
	sub := s.createSubmission(uuid.New(), userTaskModel.TaskSubmissionStatusSubmitted, nil)

	_, err := s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "")
	s.ErrorIs(err, ErrIncorrectSubmission)
}

func (s *PostServiceSuite) TestPublishUnknownSubmission() {
	_, err := s.posts.PublishFromSubmission(s.ctx, uuid.New(), "")
	s.ErrorIs(err, ErrIncorrectSubmission)
}

func (s *PostServiceSuite) TestPublishTwiceRejected() {
	sub := s.createSubmission(uuid.New(), userTaskModel.TaskSubmissionStatusApproved, nil)

	_, err := s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "")
	s.Require().NoError(err)

	_, err = s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "")
	s.ErrorIs(err, ErrIncorrectSubmission)
}

func (s *PostServiceSuite) TestDeleteTaskPostResetsIsPosted() {
	userID := uuid.New()
	images := []storage.ImagePair{{Original: "/profile/u/task-submission/images/a.png"}}
	sub := s.createSubmission(userID, userTaskModel.TaskSubmissionStatusApproved, images)

	post, err := s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "")
	s.Require().NoError(err)

	s.Require().NoError(s.posts.Delete(s.ctx, post.PostID, userID, false))

	var fresh userTaskModel.TaskSubmissionModel
	s.Require().NoError(s.db.First(&fresh, "submission_id = ?", sub.SubmissionID).Error)
	// retract: submission bisa dipublikasikan ulang
	s.False(fresh.SubmissionIsPosted)

	// dan memang bisa
	_, err = s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "")
	s.NoError(err)
}

func (s *PostServiceSuite) TestDeleteGeneralPostRemovesFiles() {
	owner := uuid.New()
	img := s.stage("foto.png")
	imgC := s.stage("foto-compressed.webp")

	post, err := s.posts.Create(s.ctx, CreatePostInput{
		UserID: owner,
		Images: []storage.ImagePair{{Original: img, Compressed: imgC}},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.posts.Delete(s.ctx, post.PostID, owner, false))
	s.False(s.fileExists(img))
	s.False(s.fileExists(imgC))

	_, err = s.posts.GetByID(s.ctx, post.PostID)
	s.ErrorIs(err, ErrPostNotFound)
}

func (s *PostServiceSuite) TestDeleteOnlyOwnerOrAdmin() {
	owner := uuid.New()
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: owner})
	s.Require().NoError(err)

	err = s.posts.Delete(s.ctx, post.PostID, uuid.New(), false)
	s.ErrorIs(err, ErrNotPostOwner)

	// admin boleh
	s.NoError(s.posts.Delete(s.ctx, post.PostID, uuid.New(), true))
}

/* =========================================================
 * Relocation job
 * ========================================================= */

func (s *PostServiceSuite) TestRelocateImagesSkipsTaskPosts() {
	userID := uuid.New()
	staged := s.stage("bukti.png")
	sub := s.createSubmission(userID, userTaskModel.TaskSubmissionStatusApproved,
		[]storage.ImagePair{{Original: staged}})

	post, err := s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "")
	s.Require().NoError(err)

	sum, err := s.posts.RelocateImages(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(0, sum.Moved)
	s.Equal(0, sum.Updated)

	// path post turunan task tidak berubah
	fresh, err := s.posts.GetByID(s.ctx, post.PostID)
	s.Require().NoError(err)
	s.Equal(staged, storage.DecodeImagePairs(fresh.PostImages)[0].Original)
}

func (s *PostServiceSuite) TestRelocateImagesMovesGeneralPost() {
	userID := uuid.New()
	staged := s.stage("liburan.png")

	post, err := s.posts.Create(s.ctx, CreatePostInput{
		UserID: userID,
		Images: []storage.ImagePair{{Original: staged, Compressed: staged}},
	})
	s.Require().NoError(err)

	sum, err := s.posts.RelocateImages(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(1, sum.Updated)

	fresh, err := s.posts.GetByID(s.ctx, post.PostID)
	s.Require().NoError(err)
	want := storage.PostImagesDir(userID.String()) + "/liburan.png"
	s.Equal(want, storage.DecodeImagePairs(fresh.PostImages)[0].Original)
}

/* =========================================================
 * Comments
 * ========================================================= */

func (s *PostServiceSuite) TestCommentOneLevelNesting() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)

	top, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), Content: "mantap",
	})
	s.Require().NoError(err)

	reply, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), ParentID: &top.CommentID, Content: "setuju",
	})
	s.Require().NoError(err)

	// reply terhadap reply ditolak
	_, err = s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), ParentID: &reply.CommentID, Content: "nggak boleh",
	})
	s.ErrorIs(err, ErrReplyToReply)
}

func (s *PostServiceSuite) TestCommentReplyCountMaintained() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)

	top, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), Content: "top",
	})
	s.Require().NoError(err)

	r1, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), ParentID: &top.CommentID, Content: "r1",
	})
	s.Require().NoError(err)
	_, err = s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), ParentID: &top.CommentID, Content: "r2",
	})
	s.Require().NoError(err)

	var fresh model.PostCommentModel
	s.Require().NoError(s.db.First(&fresh, "comment_id = ?", top.CommentID).Error)
	s.Equal(2, fresh.CommentReplyCount)

	// hapus satu reply menurunkan counter
	s.Require().NoError(s.comments.Delete(s.ctx, r1.CommentID, r1.CommentUserID, false))
	s.Require().NoError(s.db.First(&fresh, "comment_id = ?", top.CommentID).Error)
	s.Equal(1, fresh.CommentReplyCount)
}

func (s *PostServiceSuite) TestDeleteTopLevelCascadesReplies() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)

	owner := uuid.New()
	top, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: owner, Content: "top",
	})
	s.Require().NoError(err)
	_, err = s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), ParentID: &top.CommentID, Content: "r1",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.comments.Delete(s.ctx, top.CommentID, owner, false))

	total, err := s.comments.CountByPost(s.ctx, post.PostID)
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *PostServiceSuite) TestDeleteTopLevelRemovesCommentLikes() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)

	owner := uuid.New()
	top, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: owner, Content: "top",
	})
	s.Require().NoError(err)
	reply, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), ParentID: &top.CommentID, Content: "r1",
	})
	s.Require().NoError(err)

	_, err = s.likes.ToggleCommentLike(s.ctx, top.CommentID, uuid.New())
	s.Require().NoError(err)
	_, err = s.likes.ToggleCommentLike(s.ctx, reply.CommentID, uuid.New())
	s.Require().NoError(err)

	s.Require().NoError(s.comments.Delete(s.ctx, top.CommentID, owner, false))

	var likes int64
	s.Require().NoError(s.db.Model(&model.CommentLikeModel{}).Count(&likes).Error)
	s.Zero(likes)
}

func (s *PostServiceSuite) TestDeleteReplyRemovesItsLikes() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)

	top, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), Content: "top",
	})
	s.Require().NoError(err)
	replyOwner := uuid.New()
	reply, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: replyOwner, ParentID: &top.CommentID, Content: "r1",
	})
	s.Require().NoError(err)

	_, err = s.likes.ToggleCommentLike(s.ctx, top.CommentID, uuid.New())
	s.Require().NoError(err)
	_, err = s.likes.ToggleCommentLike(s.ctx, reply.CommentID, uuid.New())
	s.Require().NoError(err)

	s.Require().NoError(s.comments.Delete(s.ctx, reply.CommentID, replyOwner, false))

	// like milik reply hilang, like komentar top-level tetap
	var likes []model.CommentLikeModel
	s.Require().NoError(s.db.Find(&likes).Error)
	s.Require().Len(likes, 1)
	s.Equal(top.CommentID, likes[0].CommentLikeCommentID)
}

func (s *PostServiceSuite) TestDeletePostRemovesCommentLikes() {
	owner := uuid.New()
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: owner})
	s.Require().NoError(err)

	comment, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), Content: "mantap",
	})
	s.Require().NoError(err)
	_, err = s.likes.ToggleCommentLike(s.ctx, comment.CommentID, uuid.New())
	s.Require().NoError(err)

	s.Require().NoError(s.posts.Delete(s.ctx, post.PostID, owner, false))

	var likes int64
	s.Require().NoError(s.db.Model(&model.CommentLikeModel{}).Count(&likes).Error)
	s.Zero(likes)
}

func (s *PostServiceSuite) TestCommentEmptyContentRejected() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)

	_, err = s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), Content: "   ",
	})
	s.ErrorIs(err, ErrEmptyComment)
}

/* =========================================================
 * Likes
 * ========================================================= */

func (s *PostServiceSuite) TestTogglePostLikeFlips() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)
	userID := uuid.New()

	l1, err := s.likes.TogglePostLike(s.ctx, post.PostID, userID)
	s.Require().NoError(err)
	s.True(l1.PostLikeIsLiked)

	l2, err := s.likes.TogglePostLike(s.ctx, post.PostID, userID)
	s.Require().NoError(err)
	s.False(l2.PostLikeIsLiked)
	// baris yang sama di-flip, bukan baris baru
	s.Equal(l1.PostLikeID, l2.PostLikeID)

	l3, err := s.likes.TogglePostLike(s.ctx, post.PostID, userID)
	s.Require().NoError(err)
	s.True(l3.PostLikeIsLiked)

	total, err := s.likes.CountPostLikes(s.ctx, post.PostID)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
}

func (s *PostServiceSuite) TestToggleCommentLike() {
	post, err := s.posts.Create(s.ctx, CreatePostInput{UserID: uuid.New()})
	s.Require().NoError(err)
	comment, err := s.comments.Create(s.ctx, CreateCommentInput{
		PostID: post.PostID, UserID: uuid.New(), Content: "oke",
	})
	s.Require().NoError(err)
	userID := uuid.New()

	l1, err := s.likes.ToggleCommentLike(s.ctx, comment.CommentID, userID)
	s.Require().NoError(err)
	s.True(l1.CommentLikeIsLiked)

	l2, err := s.likes.ToggleCommentLike(s.ctx, comment.CommentID, userID)
	s.Require().NoError(err)
	s.False(l2.CommentLikeIsLiked)
}

func (s *PostServiceSuite) TestLikeUnknownPost() {
	_, err := s.likes.TogglePostLike(s.ctx, uuid.New(), uuid.New())
	s.ErrorIs(err, ErrPostNotFound)
}

// Alur lengkap: assign -> submit bukti -> relokasi -> verdict approve ->
// publish jadi post -> retract.
func (s *PostServiceSuite) TestFullTaskLifecycle() {
	userID := uuid.New()
	task := taskModel.TaskModel{TaskTitle: "Menulis esai"}
	s.Require().NoError(s.db.Create(&task).Error)

	assignments := userTaskService.NewAssignmentService(s.db)
	submissions := userTaskService.NewSubmissionService(s.db, s.storage)
	reviews := userTaskService.NewReviewService(s.db)

	_, err := assignments.AssignTasks(s.ctx, userID, []uuid.UUID{task.TaskID})
	s.Require().NoError(err)

	staged := s.stage("esai.png")
	sub, err := submissions.Create(s.ctx, userTaskService.CreateSubmissionInput{
		UserID: userID,
		TaskID: task.TaskID,
		Images: []storage.ImagePair{{Original: staged, Compressed: staged}},
	})
	s.Require().NoError(err)

	sum, err := submissions.RelocateEvidence(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(1, sum.Updated)

	s.Require().NoError(reviews.UpdateVerdict(s.ctx, userID, task.TaskID, "approved", "A", "bagus"))

	post, err := s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "akhirnya selesai")
	s.Require().NoError(err)
	s.Equal(model.PostTypeTask, post.PostType)

	// gambar post menunjuk path final milik submission
	imgs := storage.DecodeImagePairs(post.PostImages)
	s.Require().Len(imgs, 1)
	s.Equal(storage.SubmissionImagesDir(userID.String())+"/esai.png", imgs[0].Original)

	// retract lalu publish ulang
	s.Require().NoError(s.posts.Delete(s.ctx, post.PostID, userID, false))
	_, err = s.posts.PublishFromSubmission(s.ctx, sub.SubmissionID, "")
	s.NoError(err)
}

func TestPostServiceSuite(t *testing.T) {
	suite.Run(t, new(PostServiceSuite))
}
