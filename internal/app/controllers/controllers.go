package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
)

// respondValidationError renders a request-binding failure in the standard
// envelope. The binding error text is carried as detail for debugging.
func respondValidationError(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
		WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
