package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App         *App
		DB          *DB
		HTTP        *HTTP
		Redis       *Redis
		Storage     *Storage
		Recommended *Recommended
	}

	App struct {
		Name string
		Env  string
	}

	DB struct {
		Host          string
		Port          string
		User          string
		Password      string
		Name          string
		MigrationsDir string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}

	Storage struct {
		ImagesDir string
	}

	// Recommended holds the criteria behind the fixed "recommended cars"
	// view. Defaults match the dealership's stocked lineup; every field
	// can be overridden through the environment.
	Recommended struct {
		Models        []string
		Brands        []string
		Years         []int
		Transmission  string
		FuelType      string
		PriceAnchor   int
		PriceSpread   int
		MileageAnchor int
		MileageSpread int
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		// Missing .env is fine when everything comes from the environment
		_ = godotenv.Load()
	}

	app := &App{
		Name: getEnv("APP_NAME", "car-inventory-service"),
		Env:  os.Getenv("APP_ENV"),
	}

	db := &DB{
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          getEnv("DB_PORT", "5432"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "./internal/adapter/postgres/migrations"),
	}

	http := &HTTP{
		Port:           getEnv("HTTP_PORT", "3000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
	}

	redis := &Redis{
		Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	storage := &Storage{
		ImagesDir: getEnv("IMAGES_DIR", "./images"),
	}

	recommended := &Recommended{
		Models:        getEnvList("RECOMMENDED_MODELS", []string{"corolla", "civic", "c-class", "malibu", "optima", "impreza", "Elantra", "A4"}),
		Brands:        getEnvList("RECOMMENDED_BRANDS", []string{"toyota", "honda", "ford", "Nissan", "Tesla", "subaru", "Audi", "Kia"}),
		Years:         getEnvIntList("RECOMMENDED_YEARS", []int{2019, 2020, 2021, 2022, 2023}),
		Transmission:  getEnv("RECOMMENDED_TRANSMISSION", "manual"),
		FuelType:      getEnv("RECOMMENDED_FUEL_TYPE", "Petrol"),
		PriceAnchor:   getEnvInt("RECOMMENDED_PRICE", 25000),
		PriceSpread:   getEnvInt("RECOMMENDED_PRICE_SPREAD", 10000),
		MileageAnchor: getEnvInt("RECOMMENDED_MILEAGE", 15000),
		MileageSpread: getEnvInt("RECOMMENDED_MILEAGE_SPREAD", 1000),
	}

	return &Container{
		App:         app,
		DB:          db,
		HTTP:        http,
		Redis:       redis,
		Storage:     storage,
		Recommended: recommended,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getEnvIntList(key string, fallback []int) []int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var values []int
	for _, p := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fallback
		}
		values = append(values, n)
	}
	return values
}
