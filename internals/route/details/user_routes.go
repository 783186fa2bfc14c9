// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileController "mentorku_backend/internals/features/users/user_profiles/controller"
	"mentorku_backend/internals/helpers/storage"
	rateLimiter "mentorku_backend/internals/middlewares"
)

// UserRoutes: profil bisa dilihat siapa saja, upsert wajib login.
func UserRoutes(api fiber.Router, db *gorm.DB, st *storage.Storage, auth fiber.Handler) {
	ctl := profileController.NewUserProfileController(db, st)

	api.Get("/user-profile/:user_id", ctl.GetByUserID)
	api.Put("/user-profile", auth, rateLimiter.UploadRateLimiter(), ctl.Upsert)
}
