package http

import "github.com/gin-gonic/gin"

type errorResponse struct {
	Error string `json:"error"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Errors []fieldError `json:"errors"`
}

func newValidationErrorResponse(c *gin.Context, status int, errs []fieldError) {
	c.AbortWithStatusJSON(status, validationErrorResponse{Errors: errs})
}
