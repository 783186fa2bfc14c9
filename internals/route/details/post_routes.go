// file: internals/route/details/post_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	postController "mentorku_backend/internals/features/posts/posts/controller"
	"mentorku_backend/internals/helpers/storage"
	rateLimiter "mentorku_backend/internals/middlewares"
	authMw "mentorku_backend/internals/middlewares/auth"
)

// PostRoutes: feed, publish bridge dari submission, komentar & like.
// Baca bebas, tulis wajib JWT (dipasang per-route, prefix /post dipakai dua-duanya).
func PostRoutes(api fiber.Router, db *gorm.DB, st *storage.Storage, auth fiber.Handler) {
	postCtl := postController.NewPostController(db, st)
	commentCtl := postController.NewPostCommentController(db)

	post := api.Group("/post")
	post.Get("/by-user/:user_id", postCtl.ListByUser)
	post.Post("/", auth, rateLimiter.UploadRateLimiter(), postCtl.Create)
	post.Post("/from-task", auth, postCtl.CreateFromTask)
	post.Patch("/:id/privacy", auth, postCtl.TogglePrivacy)
	post.Patch("/:id/moderate", auth, authMw.RequireAdmin(), postCtl.Moderate)
	post.Post("/:id/like", auth, postCtl.ToggleLike)
	post.Patch("/:id", auth, rateLimiter.UploadRateLimiter(), postCtl.Update)
	post.Delete("/:id", auth, postCtl.Delete)
	post.Get("/:id", postCtl.GetByID)

	comment := api.Group("/post-comment")
	comment.Get("/by-post/:post_id", commentCtl.ListByPost)
	comment.Post("/", auth, commentCtl.Create)
	comment.Get("/:id/replies", commentCtl.ListReplies)
	comment.Post("/:id/like", auth, commentCtl.ToggleLike)
	comment.Delete("/:id", auth, commentCtl.Delete)
}
