package controller

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	taskModel "mentorku_backend/internals/features/tasks/tasks/model"
	"mentorku_backend/internals/features/tasks/user_tasks/model"
	"mentorku_backend/internals/helpers/storage"
)

func newSubmissionTestApp(t *testing.T, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&taskModel.TaskModel{},
		&model.UserTaskAssignmentModel{},
		&model.TaskSubmissionModel{},
	))

	st, err := storage.NewStorage(t.TempDir())
	require.NoError(t, err)

	ctl := NewTaskSubmissionController(db, st)
	app := fiber.New()
	app.Post("/api/user/task/submission", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	}, ctl.Create)
	return app, db
}

func submissionForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestSubmissionCreate_MessageTersimpan(t *testing.T) {
	userID := uuid.New()
	app, db := newSubmissionTestApp(t, userID)

	task := taskModel.TaskModel{TaskTitle: "Tugas 1"}
	require.NoError(t, db.Create(&task).Error)

	body, contentType := submissionForm(t, map[string]string{
		"task_id": task.TaskID.String(),
		"message": "laporan minggu pertama",
	})
	req := httptest.NewRequest(fiber.MethodPost, "/api/user/task/submission", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sub model.TaskSubmissionModel
	require.NoError(t, db.Where("submission_user_id = ?", userID).First(&sub).Error)
	require.NotNil(t, sub.SubmissionMessage)
	assert.Equal(t, "laporan minggu pertama", *sub.SubmissionMessage)
	assert.Equal(t, model.TaskSubmissionStatusSubmitted, sub.SubmissionStatus)
}

func TestSubmissionCreate_MessageKosongJadiNil(t *testing.T) {
	userID := uuid.New()
	app, db := newSubmissionTestApp(t, userID)

	task := taskModel.TaskModel{TaskTitle: "Tugas 1"}
	require.NoError(t, db.Create(&task).Error)

	body, contentType := submissionForm(t, map[string]string{
		"task_id": task.TaskID.String(),
		"message": "   ",
	})
	req := httptest.NewRequest(fiber.MethodPost, "/api/user/task/submission", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sub model.TaskSubmissionModel
	require.NoError(t, db.Where("submission_user_id = ?", userID).First(&sub).Error)
	assert.Nil(t, sub.SubmissionMessage)
}

func TestSubmissionCreate_TaskTidakDikenal(t *testing.T) {
	userID := uuid.New()
	app, _ := newSubmissionTestApp(t, userID)

	body, contentType := submissionForm(t, map[string]string{
		"task_id": uuid.NewString(),
	})
	req := httptest.NewRequest(fiber.MethodPost, "/api/user/task/submission", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
