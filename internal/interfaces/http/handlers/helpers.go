package handlers

import (
	"net/http"
	"strconv"

	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/interfaces/http/middleware"
	"estate-market.backend/internal/interfaces/http/response"
	"estate-market.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID returns the authenticated caller, writing 401 when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == uuid.Nil {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam parses a path parameter, writing 400 when malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return utils.GetPaginationParams(page, limit)
}

func pagedResponse[T any](c *gin.Context, items []T, total int64, p utils.PaginationParams) {
	if items == nil {
		items = []T{}
	}
	response.Paged(c, http.StatusOK, items, utils.CalculateMeta(total, p.Page, p.Limit))
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}
