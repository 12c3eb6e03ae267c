package service

import (
	"golang.org/x/crypto/bcrypt"

	"rag-chat/internal/model"
	"rag-chat/internal/repository"
	"rag-chat/pkg/utils"
)

// AuthService handles login and credential verification.
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the credentials against the active user with that email
// and issues a JWT. The same error covers unknown email and bad password
// so the response does not reveal which one failed.
func (s *AuthService) Login(req LoginRequest) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredential
	}

	token, err := utils.GenerateToken(user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
