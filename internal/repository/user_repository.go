package repository

import (
	"errors"

	"gorm.io/gorm"

	"rag-chat/internal/model"
)

// UserRepository handles user persistence. Lookups are scoped to active
// rows unless includeDeleted is requested; not-found returns (nil, nil).
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// Save persists pending field changes and refreshes updated_at.
func (r *UserRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) FindByID(id uint, includeDeleted bool) (*model.User, error) {
	var user model.User
	if err := r.scope(includeDeleted).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByName(name string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// IsNameTaken reports whether an active user already holds the name.
// Soft-deleted rows never block a name.
func (r *UserRepository) IsNameTaken(name string) (bool, error) {
	user, err := r.FindByName(name)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (r *UserRepository) IsEmailTaken(email string) (bool, error) {
	user, err := r.FindByEmail(email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (r *UserRepository) FindAll(includeDeleted bool) ([]model.User, error) {
	var users []model.User
	err := r.scope(includeDeleted).Order("id").Find(&users).Error
	return users, err
}

// SoftDelete stamps deleted_at on the row.
func (r *UserRepository) SoftDelete(user *model.User) error {
	return r.db.Delete(user).Error
}

// SoftDeleteAll stamps every active user and returns the count affected.
func (r *UserRepository) SoftDeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.User{})
	return result.RowsAffected, result.Error
}

// Restore clears deleted_at, returning the row to the active partition.
func (r *UserRepository) Restore(user *model.User) error {
	if err := r.db.Unscoped().Model(user).Update("deleted_at", nil).Error; err != nil {
		return err
	}
	user.DeletedAt = gorm.DeletedAt{}
	return nil
}

// HardDelete physically removes the row together with any membership rows
// that reference it, so no dangling foreign keys remain.
func (r *UserRepository) HardDelete(user *model.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(user).Error
	})
}

func (r *UserRepository) scope(includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return r.db.Unscoped()
	}
	return r.db
}
