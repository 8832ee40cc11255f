package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserName         string `gorm:"not null;column:user_name" json:"user_name"`
	UserEmail        string `gorm:"not null;uniqueIndex,where:user_deleted_at IS NULL;column:user_email" json:"user_email"`
	UserPasswordHash string `gorm:"not null;column:user_password_hash" json:"-"`
	UserRole         string `gorm:"not null;default:'staff';column:user_role" json:"user_role"`
	UserIsActive     bool   `gorm:"default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
