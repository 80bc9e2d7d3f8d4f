package response

import (
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// PagedResult wraps a page of items with its metadata.
type PagedResult struct {
	Items interface{}          `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paged sends a page of items with pagination metadata.
func Paged(c *gin.Context, status int, items interface{}, meta utils.PaginationMeta) {
	c.JSON(status, PagedResult{Items: items, Meta: meta})
}

// Error sends an error response, translating domain errors to their status.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr == nil {
		appErr = domainerrors.InternalServerError("unknown error")
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}
