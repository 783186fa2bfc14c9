// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mentorku_backend/internals/helpers/storage"
	rateLimiter "mentorku_backend/internals/middlewares"
	authMw "mentorku_backend/internals/middlewares/auth"
	routeDetails "mentorku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, st *storage.Storage) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// File publik (hasil upload & relokasi) disajikan apa adanya.
	app.Static("/", st.Root)

	api := app.Group("/api", rateLimiter.GlobalRateLimiter())

	// JWT dipasang per-route oleh masing-masing route detail (endpoint publik
	// dan privat berbagi prefix, jadi tidak bisa lewat middleware group).
	auth := authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	})

	log.Println("[INFO] Mounting Task routes...")
	routeDetails.TaskRoutes(api, db, st, auth)

	log.Println("[INFO] Mounting Post routes...")
	routeDetails.PostRoutes(api, db, st, auth)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, db, st, auth)
}
