package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/autolot/car-inventory-service/internal/core/domain"
	"github.com/autolot/car-inventory-service/internal/core/ports"
)

const listAllCacheKey = "cars:all"

type CarService struct {
	carRepo     ports.CarRepository
	images      ports.ImageStorePort
	hub         ports.EventHub
	logger      ports.LoggerPort
	validate    *validator.Validate
	cache       ports.CachePort
	recommended domain.RecommendedCriteria
}

func NewCarService(
	carRepo ports.CarRepository,
	images ports.ImageStorePort,
	hub ports.EventHub,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
	recommended domain.RecommendedCriteria,
) *CarService {
	return &CarService{
		carRepo:     carRepo,
		images:      images,
		hub:         hub,
		logger:      logger,
		validate:    validate,
		cache:       cache,
		recommended: recommended,
	}
}

func (s *CarService) ListAll(ctx context.Context) ([]*domain.Car, error) {
	cachedData, err := s.cache.Get(listAllCacheKey)
	if err == nil {
		var cachedCars []*domain.Car
		if err := json.Unmarshal(cachedData, &cachedCars); err == nil {
			return cachedCars, nil
		}
	}

	cars, err := s.carRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list cars", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if carsData, err := json.Marshal(cars); err == nil {
		if err := s.cache.Set(listAllCacheKey, carsData, 5*time.Minute); err != nil {
			s.logger.Warn("Failed to cache car listing", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return cars, nil
}

// FilterByAttribute runs a single-dimension filter. Numeric fields take
// the raw path segment and refuse to build a query when it is not an
// integer; string fields match exactly as stored.
func (s *CarService) FilterByAttribute(ctx context.Context, field domain.FilterField, value string) ([]*domain.Car, error) {
	criteria := domain.FilterCriteria{Field: field}

	if field.Numeric() {
		anchor, err := strconv.Atoi(value)
		if err != nil {
			s.logger.Warn("Rejected non-integer filter value", map[string]interface{}{
				"field": string(field),
				"value": value,
			})
			return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidParameter, field)
		}
		criteria.Anchor = anchor
	} else {
		criteria.Value = value
	}

	cars, err := s.carRepo.ListByFilter(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to filter cars", map[string]interface{}{
			"error": err.Error(),
			"field": string(field),
		})
		return nil, err
	}
	return cars, nil
}

func (s *CarService) ListRecommended(ctx context.Context) ([]*domain.Car, error) {
	cars, err := s.carRepo.ListRecommended(ctx, s.recommended)
	if err != nil {
		s.logger.Error("Failed to list recommended cars", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return cars, nil
}

// CreateCar writes the image batch first and inserts the row second, so
// a failed upload never leaves a record pointing at missing files. If
// the insert fails, cleanup of already-written images is best-effort.
func (s *CarService) CreateCar(ctx context.Context, car *domain.Car, images []*multipart.FileHeader) (*domain.Car, error) {
	if err := s.validate.Struct(car); err != nil {
		s.logger.Error("Car validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	if len(images) > domain.MaxImagesPerCar {
		return nil, fmt.Errorf("%w: at most %d images per car", domain.ErrValidationFailed, domain.MaxImagesPerCar)
	}

	batchDir := uuid.New().String()
	paths, err := s.images.SaveAll(ctx, batchDir, images)
	if err != nil {
		s.logger.Error("Failed to store car images", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	car.ImagePaths = paths

	createdCar, err := s.carRepo.CreateCar(ctx, car)
	if err != nil {
		s.logger.Error("Failed to create car", map[string]interface{}{
			"error": err.Error(),
			"brand": car.Brand,
			"model": car.Model,
		})
		if cleanupErr := s.images.RemoveDir(batchDir); cleanupErr != nil {
			s.logger.Warn("Orphaned images left after failed insert", map[string]interface{}{
				"error": cleanupErr.Error(),
				"dir":   batchDir,
			})
		}
		return nil, err
	}

	s.invalidateListing()
	s.hub.Publish(domain.ChangeEvent{
		Kind:  domain.CarAdded,
		CarID: createdCar.ID,
		Car:   createdCar,
	})

	s.logger.Info("Car created successfully", map[string]interface{}{
		"car_id": createdCar.ID,
		"brand":  createdCar.Brand,
		"model":  createdCar.Model,
		"images": len(createdCar.ImagePaths),
	})
	return createdCar, nil
}

func (s *CarService) UpdateCar(ctx context.Context, carID string, car *domain.Car) (*domain.Car, error) {
	id, err := parseCarID(carID)
	if err != nil {
		s.logger.Warn("Invalid car ID format", map[string]interface{}{
			"car_id": carID,
		})
		return nil, err
	}

	if err := s.validate.Struct(car); err != nil {
		s.logger.Error("Car validation failed", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}

	car.ID = id
	updatedCar, err := s.carRepo.UpdateCar(ctx, car)
	if err != nil {
		s.logger.Error("Failed to update car", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		return nil, err
	}

	s.invalidateListing()
	s.hub.Publish(domain.ChangeEvent{
		Kind:  domain.CarUpdated,
		CarID: updatedCar.ID,
		Car:   updatedCar,
	})

	s.logger.Info("Car updated successfully", map[string]interface{}{
		"car_id": updatedCar.ID,
	})
	return updatedCar, nil
}

func (s *CarService) DeleteCar(ctx context.Context, carID string) error {
	id, err := parseCarID(carID)
	if err != nil {
		s.logger.Warn("Invalid car ID format", map[string]interface{}{
			"car_id": carID,
		})
		return err
	}

	existing, err := s.carRepo.GetCarByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get car before delete", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		return err
	}

	if err := s.carRepo.DeleteCar(ctx, id); err != nil {
		s.logger.Error("Failed to delete car", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		return err
	}

	if dir := imageBatchDir(existing.ImagePaths); dir != "" {
		if err := s.images.RemoveDir(dir); err != nil {
			s.logger.Warn("Failed to remove car images", map[string]interface{}{
				"error":  err.Error(),
				"car_id": carID,
				"dir":    dir,
			})
		}
	}

	s.invalidateListing()
	s.hub.Publish(domain.ChangeEvent{
		Kind:  domain.CarDeleted,
		CarID: id,
	})

	s.logger.Info("Car deleted successfully", map[string]interface{}{
		"car_id": carID,
	})
	return nil
}

func (s *CarService) invalidateListing() {
	if err := s.cache.Delete(listAllCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate car listing cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func parseCarID(carID string) (int64, error) {
	id, err := strconv.ParseInt(carID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: car id must be an integer", domain.ErrInvalidParameter)
	}
	return id, nil
}

// imageBatchDir recovers the per-car directory from stored relative
// paths of the form images/<batch>/<file>.
func imageBatchDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	parts := strings.Split(paths[0], "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}
