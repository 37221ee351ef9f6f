package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autolot/car-inventory-service/internal/core/domain"
	"github.com/autolot/car-inventory-service/internal/core/ports"
)

type CarHandler struct {
	carService ports.CarService
	logger     ports.LoggerPort
	metrics    ports.MetricsPort
}

func NewCarHandler(
	carService ports.CarService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *CarHandler {
	return &CarHandler{
		carService: carService,
		logger:     logger,
		metrics:    metrics,
	}
}

type CarResponse struct {
	ID           int64     `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Price        float64   `json:"price"`
	Mileage      int       `json:"mileage"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	Color        string    `json:"color"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AddCarForm struct {
	Brand        string  `form:"brand" binding:"required" example:"toyota"`
	Model        string  `form:"model" binding:"required" example:"corolla"`
	Year         int     `form:"year" binding:"required" example:"2021"`
	Price        float64 `form:"price" binding:"required" example:"20000"`
	Mileage      int     `form:"mileage" example:"15000"`
	FuelType     string  `form:"fuel_type" binding:"required" example:"Petrol"`
	Transmission string  `form:"transmission" binding:"required" example:"manual"`
	Color        string  `form:"color" example:"red"`
}

type UpdateCarRequest struct {
	Brand        string  `json:"brand" binding:"required" example:"toyota"`
	Model        string  `json:"model" binding:"required" example:"corolla"`
	Year         int     `json:"year" binding:"required" example:"2021"`
	Price        float64 `json:"price" binding:"required" example:"20000"`
	Mileage      int     `json:"mileage" example:"15000"`
	FuelType     string  `json:"fuel_type" binding:"required" example:"Petrol"`
	Transmission string  `json:"transmission" binding:"required" example:"manual"`
	Color        string  `json:"color" example:"red"`
}

type MutationResponse struct {
	Message string       `json:"message"`
	Car     *CarResponse `json:"car,omitempty"`
}

func toCarResponse(car *domain.Car) *CarResponse {
	return &CarResponse{
		ID:           car.ID,
		Brand:        car.Brand,
		Model:        car.Model,
		Year:         car.Year,
		Price:        car.Price,
		Mileage:      car.Mileage,
		FuelType:     car.FuelType,
		Transmission: car.Transmission,
		Color:        car.Color,
		Images:       car.ImagePaths,
		CreatedAt:    car.CreatedAt,
		UpdatedAt:    car.UpdatedAt,
	}
}

func toCarResponses(cars []*domain.Car) []CarResponse {
	responses := make([]CarResponse, len(cars))
	for i, car := range cars {
		responses[i] = *toCarResponse(car)
	}
	return responses
}

// @Summary List all cars
// @Tags cars
// @Produce json
// @Success 200 {array} CarResponse
// @Failure 500 {object} errorResponse
// @Router /cars [get]
func (h *CarHandler) ListCars(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	cars, err := h.carService.ListAll(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Database query failed")
		return
	}
	c.JSON(http.StatusOK, toCarResponses(cars))
}

// filter runs one filter dimension and maps errors to HTTP statuses.
func (h *CarHandler) filter(c *gin.Context, field domain.FilterField, value string, invalidMsg string) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	cars, err := h.carService.FilterByAttribute(c.Request.Context(), field, value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParameter) {
			newErrorResponse(c, http.StatusBadRequest, invalidMsg)
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Database query failed")
		return
	}
	c.JSON(http.StatusOK, toCarResponses(cars))
}

// @Summary Filter cars by brand
// @Tags cars
// @Produce json
// @Param brand path string true "Brand"
// @Success 200 {array} CarResponse
// @Failure 500 {object} errorResponse
// @Router /brand/{brand} [get]
func (h *CarHandler) FilterByBrand(c *gin.Context) {
	h.filter(c, domain.FilterBrand, c.Param("brand"), "Invalid brand parameter")
}

// @Summary Filter cars by model
// @Tags cars
// @Produce json
// @Param model path string true "Model"
// @Success 200 {array} CarResponse
// @Failure 500 {object} errorResponse
// @Router /model/{model} [get]
func (h *CarHandler) FilterByModel(c *gin.Context) {
	h.filter(c, domain.FilterModel, c.Param("model"), "Invalid model parameter")
}

// @Summary Filter cars by year, cheapest first
// @Tags cars
// @Produce json
// @Param year path int true "Year"
// @Success 200 {array} CarResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /year/{year} [get]
func (h *CarHandler) FilterByYear(c *gin.Context) {
	h.filter(c, domain.FilterYear, c.Param("year"), "Invalid year parameter")
}

// @Summary Filter cars by price range around an anchor
// @Tags cars
// @Produce json
// @Param price path int true "Price anchor"
// @Success 200 {array} CarResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /price/{price} [get]
func (h *CarHandler) FilterByPrice(c *gin.Context) {
	h.filter(c, domain.FilterPrice, c.Param("price"), "Invalid price parameter")
}

// @Summary Filter cars by mileage range around an anchor
// @Tags cars
// @Produce json
// @Param mileage path int true "Mileage anchor"
// @Success 200 {array} CarResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /mileage/{mileage} [get]
func (h *CarHandler) FilterByMileage(c *gin.Context) {
	h.filter(c, domain.FilterMileage, c.Param("mileage"), "Invalid mileage parameter")
}

// @Summary Filter cars by fuel type
// @Tags cars
// @Produce json
// @Param fuel_type path string true "Fuel type"
// @Success 200 {array} CarResponse
// @Failure 500 {object} errorResponse
// @Router /fuel/{fuel_type} [get]
func (h *CarHandler) FilterByFuelType(c *gin.Context) {
	h.filter(c, domain.FilterFuelType, c.Param("fuel_type"), "Invalid fuel type parameter")
}

// @Summary Filter cars by transmission
// @Tags cars
// @Produce json
// @Param transmission path string true "Transmission"
// @Success 200 {array} CarResponse
// @Failure 500 {object} errorResponse
// @Router /cars/{transmission} [get]
func (h *CarHandler) FilterByTransmission(c *gin.Context) {
	h.filter(c, domain.FilterTransmission, c.Param("transmission"), "Invalid transmission parameter")
}

// @Summary Recommended cars view
// @Description Fixed multi-criteria selection configured on the server
// @Tags cars
// @Produce json
// @Success 200 {array} CarResponse
// @Failure 500 {object} errorResponse
// @Router /all [get]
func (h *CarHandler) RecommendedCars(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	cars, err := h.carService.ListRecommended(c.Request.Context())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Database query failed")
		return
	}
	c.JSON(http.StatusOK, toCarResponses(cars))
}

// @Summary Add a car with images
// @Tags cars
// @Accept multipart/form-data
// @Produce json
// @Param brand formData string true "Brand"
// @Param model formData string true "Model"
// @Param year formData int true "Year"
// @Param price formData number true "Price"
// @Param mileage formData int false "Mileage"
// @Param fuel_type formData string true "Fuel type"
// @Param transmission formData string true "Transmission"
// @Param color formData string false "Color"
// @Param images formData file false "Up to 5 images"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /addCar [post]
func (h *CarHandler) AddCar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var form AddCarForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Failed form bind in add car", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := mpForm.File["images"]
	if len(files) > domain.MaxImagesPerCar {
		newErrorResponse(c, http.StatusBadRequest, "At most 5 images per car")
		return
	}

	car := &domain.Car{
		Brand:        form.Brand,
		Model:        form.Model,
		Year:         form.Year,
		Price:        form.Price,
		Mileage:      form.Mileage,
		FuelType:     form.FuelType,
		Transmission: form.Transmission,
		Color:        form.Color,
	}

	createdCar, err := h.carService.CreateCar(c.Request.Context(), car, files)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) {
			newErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to add car", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to add car")
		return
	}

	c.JSON(http.StatusOK, MutationResponse{
		Message: "Car details uploaded successfully",
		Car:     toCarResponse(createdCar),
	})
}

// @Summary Update a car
// @Tags cars
// @Accept json
// @Produce json
// @Param id path int true "Car ID"
// @Param request body UpdateCarRequest true "Car fields"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /updateCar/{id} [put]
func (h *CarHandler) UpdateCar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	carID := c.Param("id")

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in update car", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	car := &domain.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Color:        req.Color,
	}

	updatedCar, err := h.carService.UpdateCar(c.Request.Context(), carID, car)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidParameter):
			newErrorResponse(c, http.StatusBadRequest, "Invalid car ID")
		case errors.Is(err, domain.ErrValidationFailed):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrCarNotFound):
			newErrorResponse(c, http.StatusNotFound, "Car not found")
		default:
			h.logger.Error("Failed to update car", map[string]interface{}{
				"error":  err.Error(),
				"car_id": carID,
			})
			newErrorResponse(c, http.StatusInternalServerError, "Update failed")
		}
		return
	}

	c.JSON(http.StatusOK, MutationResponse{
		Message: "Car details updated successfully",
		Car:     toCarResponse(updatedCar),
	})
}

// @Summary Delete a car
// @Tags cars
// @Produce json
// @Param id path int true "Car ID"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /deleteCar/{id} [delete]
func (h *CarHandler) DeleteCar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	carID := c.Param("id")

	if err := h.carService.DeleteCar(c.Request.Context(), carID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidParameter):
			newErrorResponse(c, http.StatusBadRequest, "Invalid car ID")
		case errors.Is(err, domain.ErrCarNotFound):
			newErrorResponse(c, http.StatusNotFound, "Car not found")
		default:
			h.logger.Error("Failed to delete car", map[string]interface{}{
				"error":  err.Error(),
				"car_id": carID,
			})
			newErrorResponse(c, http.StatusInternalServerError, "Delete failed")
		}
		return
	}

	c.JSON(http.StatusOK, MutationResponse{
		Message: "Car deleted successfully",
	})
}
