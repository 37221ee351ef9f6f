package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/autolot/car-inventory-service/internal/core/domain"
	"github.com/autolot/car-inventory-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

func NewUserHandler(
	userService ports.UserService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
		metrics:     metrics,
	}
}

type CheckEmailRequest struct {
	Email string `json:"email" binding:"required" example:"buyer@example.com"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

type SubmitFormRequest struct {
	Name     string `json:"name" binding:"required" example:"Jordan Smith"`
	Email    string `json:"email" binding:"required,email" example:"buyer@example.com"`
	Password string `json:"password" binding:"required,min=6"`
}

type SubmitFormResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Results interface{} `json:"results"`
}

// @Summary Check whether an email is already registered
// @Tags users
// @Accept json
// @Produce json
// @Param request body CheckEmailRequest true "Email to check"
// @Success 200 {object} CheckEmailResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /check-email-existence [post]
func (h *UserHandler) CheckEmailExistence(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	exists, err := h.userService.CheckEmailExistence(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) {
			newErrorResponse(c, http.StatusBadRequest, "Invalid email address")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Error checking email existence")
		return
	}

	c.JSON(http.StatusOK, CheckEmailResponse{Exists: exists})
}

// @Summary Submit the signup form
// @Tags users
// @Accept json
// @Produce json
// @Param request body SubmitFormRequest true "Signup fields"
// @Success 200 {object} SubmitFormResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 500 {object} errorResponse
// @Router /submit-form [post]
func (h *UserHandler) SubmitForm(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newValidationErrorResponse(c, http.StatusBadRequest, bindingFieldErrors(err))
		return
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	createdUser, err := h.userService.SubmitForm(c.Request.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			newValidationErrorResponse(c, http.StatusBadRequest, []fieldError{
				{Field: "email", Message: "email already registered"},
			})
		case errors.Is(err, domain.ErrValidationFailed):
			newValidationErrorResponse(c, http.StatusBadRequest, []fieldError{
				{Field: "form", Message: err.Error()},
			})
		default:
			h.logger.Error("Failed to submit form", map[string]interface{}{
				"error": err.Error(),
			})
			newErrorResponse(c, http.StatusInternalServerError, "Failed to insert data")
		}
		return
	}

	c.JSON(http.StatusOK, SubmitFormResponse{
		Success: true,
		Message: "Data inserted successfully",
		Results: createdUser,
	})
}

// bindingFieldErrors flattens gin binding failures into per-field
// messages the signup page can attach to inputs.
func bindingFieldErrors(err error) []fieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []fieldError{{Field: "body", Message: "invalid request body"}}
	}

	fields := make([]fieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fieldError{
			Field:   fe.Field(),
			Message: "failed on rule: " + fe.Tag(),
		})
	}
	return fields
}
