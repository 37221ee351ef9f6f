package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/autolot/car-inventory-service/internal/core/domain"
	"github.com/autolot/car-inventory-service/internal/core/ports"
)

type UserService struct {
	userRepo ports.UserRepository
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewUserService(
	userRepo ports.UserRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
		validate: validate,
	}
}

func (s *UserService) CheckEmailExistence(ctx context.Context, email string) (bool, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return false, fmt.Errorf("%w: invalid email address", domain.ErrValidationFailed)
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email existence", map[string]interface{}{
			"error": err.Error(),
		})
		return false, err
	}
	return exists, nil
}

func (s *UserService) SubmitForm(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.validate.Struct(user); err != nil {
		s.logger.Warn("Signup form validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}

	createdUser, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if err == domain.ErrEmailTaken {
			return nil, err
		}
		s.logger.Error("Failed to insert signup form data", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Signup form data inserted", map[string]interface{}{
		"user_id": createdUser.ID,
	})
	return createdUser, nil
}
