package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=100"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	Phone        string `json:"phone" validate:"max=20"`
	Role         string `json:"role" validate:"omitempty,oneof=customer seller"`
	BusinessName string `json:"businessName" validate:"max=255"`
}

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
}

func NewAuthService(userRepo repositories.UserRepositoryImpl) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a customer or seller account. Admins are only created by
// the seed command.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.BusinessName = strings.TrimSpace(input.BusinessName)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, persistence("check email", err)
	}
	if existing != nil {
		return nil, invalid("email", "email is already registered")
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     input.Password,
		Role:         input.Role,
		BusinessName: input.BusinessName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("email", "email is already registered")
		}
		log.Printf("AuthService.Register: %s: %v", input.Email, err)
		return nil, persistence("create user", err)
	}
	return user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, persistence("load user", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		return nil, invalidLogin()
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, nil, userID)
	if err != nil {
		return nil, persistence("load user", err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}
