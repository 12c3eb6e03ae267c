package model

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_groups_name_active,where:deleted_at IS NULL" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (g *Group) IsDeleted() bool {
	return g.DeletedAt.Valid
}

func (g *Group) IsActive() bool {
	return !g.DeletedAt.Valid
}
