package ports

import (
	"context"

	"github.com/autolot/car-inventory-service/internal/core/domain"
)

type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
}

type UserService interface {
	CheckEmailExistence(ctx context.Context, email string) (bool, error)
	SubmitForm(ctx context.Context, user *domain.User) (*domain.User, error)
}
