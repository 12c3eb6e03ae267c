package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rag-chat/internal/model"
	"rag-chat/internal/repository"
)

// UserService implements user lifecycle operations: create, lookup,
// update, soft/hard delete and restore. Uniqueness pre-checks are a
// fast-fail; the partial unique indexes are the authoritative guard and
// their violations are mapped to the same conflict errors.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest carries a partial update. A new password requires the
// current one for verification.
type UpdateUserRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=3,max=50"`
	Email           *string `json:"email" binding:"omitempty,email"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password" binding:"omitempty,min=8"`
}

func (s *UserService) Create(req CreateUserRequest) (*model.User, error) {
	taken, err := s.userRepo.IsNameTaken(req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	taken, err = s.userRepo.IsEmailTaken(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List() ([]model.User, error) {
	return s.userRepo.FindAll(false)
}

// Update applies the provided fields to an active user. Changed name/email
// values are re-checked against the active partition first.
func (s *UserService) Update(id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != user.Name {
		taken, err := s.userRepo.IsNameTaken(*req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameTaken
		}
		user.Name = *req.Name
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.userRepo.IsEmailTaken(*req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil {
			return nil, ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.CurrentPassword)); err != nil {
			return nil, ErrInvalidCredential
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SoftDelete(id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.userRepo.SoftDelete(user)
}

// SoftDeleteAll stamps every active user; an empty active set yields zero.
func (s *UserService) SoftDeleteAll() (int64, error) {
	return s.userRepo.SoftDeleteAll()
}

// Restore brings a soft-deleted user back to the active partition. It
// fails when the user does not exist or is not currently deleted.
func (s *UserService) Restore(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id, true)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsDeleted() {
		return nil, ErrNotDeleted
	}
	if err := s.userRepo.Restore(user); err != nil {
		return nil, err
	}
	return user, nil
}

// HardDelete physically removes the user, deleted or not. Irreversible.
func (s *UserService) HardDelete(id uint) error {
	user, err := s.userRepo.FindByID(id, true)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.HardDelete(user)
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *UserService) VerifyPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
