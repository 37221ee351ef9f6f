package ports

import (
	"context"
	"mime/multipart"

	"github.com/autolot/car-inventory-service/internal/core/domain"
)

type CarRepository interface {
	ListAll(ctx context.Context) ([]*domain.Car, error)
	ListByFilter(ctx context.Context, criteria domain.FilterCriteria) ([]*domain.Car, error)
	ListRecommended(ctx context.Context, rec domain.RecommendedCriteria) ([]*domain.Car, error)
	GetCarByID(ctx context.Context, id int64) (*domain.Car, error)
	CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error)
	UpdateCar(ctx context.Context, car *domain.Car) (*domain.Car, error)
	DeleteCar(ctx context.Context, id int64) error
}

type CarService interface {
	ListAll(ctx context.Context) ([]*domain.Car, error)
	FilterByAttribute(ctx context.Context, field domain.FilterField, value string) ([]*domain.Car, error)
	ListRecommended(ctx context.Context) ([]*domain.Car, error)
	CreateCar(ctx context.Context, car *domain.Car, images []*multipart.FileHeader) (*domain.Car, error)
	UpdateCar(ctx context.Context, carID string, car *domain.Car) (*domain.Car, error)
	DeleteCar(ctx context.Context, carID string) error
}
