package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/autolot/car-inventory-service/internal/core/domain"
)

type CarRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{
		db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCar(row rowScanner) (*domain.Car, error) {
	car := &domain.Car{}
	err := row.Scan(
		&car.ID,
		&car.Brand,
		&car.Model,
		&car.Year,
		&car.Price,
		&car.Mileage,
		&car.FuelType,
		&car.Transmission,
		&car.Color,
		pq.Array(&car.ImagePaths),
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return car, nil
}

func collectCars(rows *sql.Rows) ([]*domain.Car, error) {
	defer rows.Close()

	cars := []*domain.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarRepository) ListAll(ctx context.Context) ([]*domain.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM cars ORDER BY id", carColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectCars(rows)
}

func (r *CarRepository) ListByFilter(ctx context.Context, criteria domain.FilterCriteria) ([]*domain.Car, error) {
	query, args, err := buildFilterQuery(criteria)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectCars(rows)
}

func (r *CarRepository) ListRecommended(ctx context.Context, rec domain.RecommendedCriteria) ([]*domain.Car, error) {
	query, args := buildRecommendedQuery(rec)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectCars(rows)
}

func (r *CarRepository) GetCarByID(ctx context.Context, id int64) (*domain.Car, error) {
	query := fmt.Sprintf("SELECT %s FROM cars WHERE id = $1", carColumns)

	car, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *CarRepository) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	query := `INSERT INTO cars (brand, model, year, price, mileage, fuel_type, transmission, color, image_paths)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		car.Brand,
		car.Model,
		car.Year,
		car.Price,
		car.Mileage,
		car.FuelType,
		car.Transmission,
		car.Color,
		pq.Array(car.ImagePaths),
	).Scan(
		&car.ID,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23502" {
			return nil, fmt.Errorf("%w: required field is missing", domain.ErrValidationFailed)
		}
		return nil, err
	}
	return car, nil
}

func (r *CarRepository) UpdateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	query := fmt.Sprintf(`UPDATE cars
		SET
			brand = $1,
			model = $2,
			year = $3,
			price = $4,
			mileage = $5,
			fuel_type = $6,
			transmission = $7,
			color = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING %s`, carColumns)

	updated, err := scanCar(r.db.QueryRowContext(ctx, query,
		car.Brand,
		car.Model,
		car.Year,
		car.Price,
		car.Mileage,
		car.FuelType,
		car.Transmission,
		car.Color,
		car.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23502" {
			return nil, fmt.Errorf("%w: required field is missing", domain.ErrValidationFailed)
		}
		return nil, fmt.Errorf("error updating car: %w", err)
	}
	return updated, nil
}

func (r *CarRepository) DeleteCar(ctx context.Context, id int64) error {
	query := `DELETE FROM cars WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}
