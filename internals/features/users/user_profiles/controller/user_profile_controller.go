// file: internals/features/users/user_profiles/controller/user_profile_controller.go
package controller

import (
	"errors"
	"log"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "mentorku_backend/internals/features/users/user_profiles/dto"
	service "mentorku_backend/internals/features/users/user_profiles/service"
	helper "mentorku_backend/internals/helpers"
	"mentorku_backend/internals/helpers/storage"
)

type UserProfileController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   *storage.Storage
	Profiles  *service.ProfileService
}

func NewUserProfileController(db *gorm.DB, st *storage.Storage) *UserProfileController {
	return &UserProfileController{
		DB:        db,
		Validator: validator.New(),
		Storage:   st,
		Profiles:  service.NewProfileService(db, st),
	}
}

/* ==============================
   Handlers
============================== */

// PUT /api/user-profile  (multipart: user_profile_name, user_profile_bio,
// avatar, banner). Avatar/banner lama ikut terhapus saat diganti.
func (ctl *UserProfileController) Upsert(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
	}

	var req dto.UpsertUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	in := service.UpsertProfileInput{
		UserID: userID,
		Name:   req.UserProfileName,
		Bio:    req.UserProfileBio,
	}

	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		pair, err := ctl.Storage.SaveImageStaged(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan avatar")
		}
		in.Avatar = &pair
	}
	if fh, err := c.FormFile("banner"); err == nil && fh != nil {
		pair, err := ctl.Storage.SaveImageStaged(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan banner")
		}
		in.Banner = &pair
	}

	profile, err := ctl.Profiles.Upsert(c.Context(), in)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan profil")
	}

	// Relokasi staging -> /profile/<user>/main/, best-effort.
	if sum, err := ctl.Profiles.RelocateMedia(c.Context(), userID); err != nil {
		log.Printf("[user-profile] relokasi media user %s gagal: %v", userID, err)
	} else if sum.Moved > 0 || sum.Skipped > 0 {
		log.Printf("[user-profile] relokasi media user %s: moved=%d skipped=%d updated=%d",
			userID, sum.Moved, sum.Skipped, sum.Updated)
	}

	fresh, ferr := ctl.Profiles.GetByUserID(c.Context(), userID)
	if ferr != nil {
		fresh = profile
	}
	return helper.JsonUpdated(c, "Profil tersimpan", dto.NewUserProfileResponse(*fresh))
}

// GET /api/user-profile/:user_id
func (ctl *UserProfileController) GetByUserID(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	profile, err := ctl.Profiles.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Profil tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return helper.JsonOK(c, "ok", dto.NewUserProfileResponse(*profile))
}
