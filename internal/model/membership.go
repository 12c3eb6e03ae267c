package model

import (
	"time"

	"gorm.io/gorm"
)

// Membership links one user to one group. A pair may have at most one
// active row; removed-then-re-added pairs get a fresh row (and id) because
// the unique index only covers rows where deleted_at IS NULL. User and
// group data are joined explicitly at read time rather than lazy-loaded.
type Membership struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index;uniqueIndex:idx_memberships_active,where:deleted_at IS NULL" json:"user_id"`
	GroupID   uint           `gorm:"not null;index;uniqueIndex:idx_memberships_active,where:deleted_at IS NULL" json:"group_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (m *Membership) IsDeleted() bool {
	return m.DeletedAt.Valid
}

func (m *Membership) IsActive() bool {
	return !m.DeletedAt.Valid
}
