package repository

import (
	"errors"

	"gorm.io/gorm"

	"rag-chat/internal/model"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(group *model.Group) error {
	return r.db.Create(group).Error
}

func (r *GroupRepository) Save(group *model.Group) error {
	return r.db.Save(group).Error
}

func (r *GroupRepository) FindByID(id uint, includeDeleted bool) (*model.Group, error) {
	var group model.Group
	if err := r.scope(includeDeleted).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) FindByName(name string) (*model.Group, error) {
	var group model.Group
	if err := r.db.Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// IsNameTaken reports whether an active group already holds the name.
func (r *GroupRepository) IsNameTaken(name string) (bool, error) {
	group, err := r.FindByName(name)
	if err != nil {
		return false, err
	}
	return group != nil, nil
}

func (r *GroupRepository) FindAll(includeDeleted bool) ([]model.Group, error) {
	var groups []model.Group
	err := r.scope(includeDeleted).Order("id").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) SoftDelete(group *model.Group) error {
	return r.db.Delete(group).Error
}

func (r *GroupRepository) SoftDeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Group{})
	return result.RowsAffected, result.Error
}

func (r *GroupRepository) Restore(group *model.Group) error {
	if err := r.db.Unscoped().Model(group).Update("deleted_at", nil).Error; err != nil {
		return err
	}
	group.DeletedAt = gorm.DeletedAt{}
	return nil
}

// HardDelete removes the group row and its membership rows in one
// transaction.
func (r *GroupRepository) HardDelete(group *model.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("group_id = ?", group.ID).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(group).Error
	})
}

func (r *GroupRepository) scope(includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return r.db.Unscoped()
	}
	return r.db
}
