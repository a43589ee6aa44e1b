package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/models"
)

// ErrorResponse is the body of every 5xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationResponse is the body of a 422 answer.
type ValidationResponse struct {
	Detail []models.FieldError `json:"detail"`
}

func respondValidation(c *gin.Context, err *models.ValidationError) {
	_ = c.Error(err)
	c.JSON(http.StatusUnprocessableEntity, ValidationResponse{Detail: err.Fields})
}
