package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserProfileModel struct {
	UserProfileID     uuid.UUID `gorm:"column:user_profile_id;type:uuid;primaryKey" json:"user_profile_id"`
	UserProfileUserID uuid.UUID `gorm:"column:user_profile_user_id;type:uuid;not null;uniqueIndex" json:"user_profile_user_id"`

	UserProfileName *string `gorm:"column:user_profile_name;type:varchar(80)" json:"user_profile_name,omitempty"`
	UserProfileBio  *string `gorm:"column:user_profile_bio;type:text" json:"user_profile_bio,omitempty"`

	// {original, compressed}, path publik avatar/banner
	UserProfileAvatar datatypes.JSON `gorm:"column:user_profile_avatar;type:jsonb" json:"user_profile_avatar,omitempty"`
	UserProfileBanner datatypes.JSON `gorm:"column:user_profile_banner;type:jsonb" json:"user_profile_banner,omitempty"`

	UserProfileCreatedAt time.Time `gorm:"column:user_profile_created_at;autoCreateTime" json:"user_profile_created_at"`
	UserProfileUpdatedAt time.Time `gorm:"column:user_profile_updated_at;autoUpdateTime" json:"user_profile_updated_at"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }

func (m *UserProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserProfileID == uuid.Nil {
		m.UserProfileID = uuid.New()
	}
	return nil
}
