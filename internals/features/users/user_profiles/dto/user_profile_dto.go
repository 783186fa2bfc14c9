// file: internals/features/users/user_profiles/dto/user_profile_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "mentorku_backend/internals/features/users/user_profiles/model"
	"mentorku_backend/internals/helpers/storage"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Upsert profil (multipart; avatar/banner diproses controller).
type UpsertUserProfileRequest struct {
	UserProfileName *string `json:"user_profile_name" form:"user_profile_name" validate:"omitempty,max=80"`
	UserProfileBio  *string `json:"user_profile_bio" form:"user_profile_bio" validate:"omitempty,max=500"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type UserProfileResponse struct {
	UserProfileID     uuid.UUID `json:"user_profile_id"`
	UserProfileUserID uuid.UUID `json:"user_profile_user_id"`

	UserProfileName *string `json:"user_profile_name,omitempty"`
	UserProfileBio  *string `json:"user_profile_bio,omitempty"`

	UserProfileAvatar *storage.ImagePair `json:"user_profile_avatar,omitempty"`
	UserProfileBanner *storage.ImagePair `json:"user_profile_banner,omitempty"`

	UserProfileCreatedAt time.Time `json:"user_profile_created_at"`
	UserProfileUpdatedAt time.Time `json:"user_profile_updated_at"`
}

func NewUserProfileResponse(mdl m.UserProfileModel) UserProfileResponse {
	return UserProfileResponse{
		UserProfileID:        mdl.UserProfileID,
		UserProfileUserID:    mdl.UserProfileUserID,
		UserProfileName:      mdl.UserProfileName,
		UserProfileBio:       mdl.UserProfileBio,
		UserProfileAvatar:    storage.DecodeImagePair(mdl.UserProfileAvatar),
		UserProfileBanner:    storage.DecodeImagePair(mdl.UserProfileBanner),
		UserProfileCreatedAt: mdl.UserProfileCreatedAt,
		UserProfileUpdatedAt: mdl.UserProfileUpdatedAt,
	}
}
