package model

import (
	"time"

	"gorm.io/gorm"
)

// User is an account record. Name and email are unique only among active
// (not soft-deleted) rows, enforced by partial unique indexes so a deleted
// user's name/email can be reused.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_name_active,where:deleted_at IS NULL" json:"name"`
	Email     string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_email_active,where:deleted_at IS NULL" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt.Valid
}

func (u *User) IsActive() bool {
	return !u.DeletedAt.Valid
}
