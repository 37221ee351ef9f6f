package domain

import (
	"time"
)

type Car struct {
	ID           int64     `json:"id"`
	Brand        string    `json:"brand" validate:"required"`
	Model        string    `json:"model" validate:"required"`
	Year         int       `json:"year" validate:"required,gte=1900"`
	Price        float64   `json:"price" validate:"required,gt=0"`
	Mileage      int       `json:"mileage" validate:"gte=0"`
	FuelType     string    `json:"fuel_type" validate:"required"`
	Transmission string    `json:"transmission" validate:"required"`
	Color        string    `json:"color"`
	ImagePaths   []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MaxImagesPerCar caps a single upload batch.
const MaxImagesPerCar = 5
