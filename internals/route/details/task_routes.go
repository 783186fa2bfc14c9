// file: internals/route/details/task_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskController "mentorku_backend/internals/features/tasks/tasks/controller"
	userTaskController "mentorku_backend/internals/features/tasks/user_tasks/controller"
	"mentorku_backend/internals/helpers/storage"
	rateLimiter "mentorku_backend/internals/middlewares"
	authMw "mentorku_backend/internals/middlewares/auth"
)

// TaskRoutes: katalog, penugasan, progres, submission & review.
// JWT dipasang per-route karena path publik dan privat berbagi prefix
// /user/task (middleware group di Fiber match per prefix path).
func TaskRoutes(api fiber.Router, db *gorm.DB, st *storage.Storage, auth fiber.Handler) {
	taskCtl := taskController.NewTaskController(db)
	utCtl := userTaskController.NewUserTaskController(db)
	subCtl := userTaskController.NewTaskSubmissionController(db, st)

	// Katalog tugas
	api.Get("/task", taskCtl.List)
	api.Get("/task/:id", taskCtl.GetByID)
	api.Post("/task", auth, authMw.RequireAdmin(), taskCtl.Create)

	// Penugasan & progres per user
	ut := api.Group("/user/task")
	ut.Post("/assign", auth, authMw.RequireAdmin(), utCtl.AssignTasks)
	ut.Patch("/update/status", auth, utCtl.UpdateStatus)
	ut.Patch("/update/verdict", auth, authMw.RequireAdmin(), utCtl.UpdateVerdict)
	ut.Post("/submission", auth, rateLimiter.UploadRateLimiter(), subCtl.Create)
	ut.Get("/submission/:task_id", auth, authMw.RequireAdmin(), subCtl.ListByTask)
	ut.Get("/:user_id", utCtl.GetUserTasks)

	api.Get("/task-submission/:id", subCtl.GetByID)
}
