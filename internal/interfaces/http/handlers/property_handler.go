package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"estate-market.backend/internal/domain/entities"
	domainerrors "estate-market.backend/internal/domain/errors"
	"estate-market.backend/internal/interfaces/http/middleware"
	"estate-market.backend/internal/interfaces/http/response"
	"estate-market.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type propertyService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input *entities.CreatePropertyInput) (*entities.Property, error)
	Get(ctx context.Context, id, viewerID uuid.UUID, isAdmin bool) (*entities.Property, error)
	Search(ctx context.Context, filter entities.PropertyFilter, pagination utils.PaginationParams) ([]*entities.Property, int64, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Property, int64, error)
	AdminList(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Property, int64, error)
	AdminListUnverified(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Property, int64, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input *entities.UpdatePropertyInput) (*entities.Property, error)
	SetArchived(ctx context.Context, ownerID, id uuid.UUID, archived bool) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	Delete(ctx context.Context, actorID, id uuid.UUID, isAdmin bool) error
	AddMedia(ctx context.Context, ownerID, id uuid.UUID, kind entities.MediaKind, filename string, size int64, r io.Reader) (*entities.Property, error)
	RemoveMedia(ctx context.Context, ownerID, id uuid.UUID, kind entities.MediaKind, index int) (*entities.Property, error)
}

// PropertyHandler handles listing endpoints
type PropertyHandler struct {
	properties propertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties propertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

func queryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+key))
		return nil, false
	}
	return &v, true
}

func queryInt(c *gin.Context, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+key))
		return nil, false
	}
	return &v, true
}

// Search lists public listings
// GET /api/v1/properties?keyword=&minPrice=&maxPrice=&rooms=
func (h *PropertyHandler) Search(c *gin.Context) {
	minPrice, ok := queryFloat(c, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(c, "maxPrice")
	if !ok {
		return
	}
	rooms, ok := queryInt(c, "rooms")
	if !ok {
		return
	}

	filter := entities.PropertyFilter{
		Keyword:  c.Query("keyword"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Rooms:    rooms,
	}
	pagination := paginationFromQuery(c)
	properties, total, err := h.properties.Search(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, properties, total, pagination)
}

// Get returns a single listing. Hidden listings are visible to their owner
// and to admins.
// GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	viewerID, _ := middleware.GetUserID(c)

	property, err := h.properties.Get(c.Request.Context(), id, viewerID, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, property)
}

// Create adds a listing owned by the caller
// POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.CreatePropertyInput
	if !bindJSON(c, &input) {
		return
	}

	property, err := h.properties.Create(c.Request.Context(), ownerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, property)
}

// ListMine lists the caller's listings in every state
// GET /api/v1/properties/mine
func (h *PropertyHandler) ListMine(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	pagination := paginationFromQuery(c)
	properties, total, err := h.properties.ListMine(c.Request.Context(), ownerID, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, properties, total, pagination)
}

// Update edits an owned listing
// PUT /api/v1/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input entities.UpdatePropertyInput
	if !bindJSON(c, &input) {
		return
	}

	property, err := h.properties.Update(c.Request.Context(), ownerID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, property)
}

func (h *PropertyHandler) setArchived(c *gin.Context, archived bool) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.properties.SetArchived(c.Request.Context(), ownerID, id, archived); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "isArchived": archived})
}

// Archive hides an owned listing from search
// POST /api/v1/properties/:id/archive
func (h *PropertyHandler) Archive(c *gin.Context) { h.setArchived(c, true) }

// Unarchive restores an archived listing
// POST /api/v1/properties/:id/unarchive
func (h *PropertyHandler) Unarchive(c *gin.Context) { h.setArchived(c, false) }

// Delete removes a listing. Admins may delete any listing.
// DELETE /api/v1/properties/:id
// DELETE /api/v1/admin/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.properties.Delete(c.Request.Context(), actorID, id, middleware.IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Property deleted"})
}

// AddMedia uploads a photo or video
// POST /api/v1/properties/:id/media/:kind
func (h *PropertyHandler) AddMedia(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file could not be read"))
		return
	}
	defer file.Close()

	kind := entities.MediaKind(c.Param("kind"))
	property, err := h.properties.AddMedia(c.Request.Context(), ownerID, id, kind, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, property)
}

// RemoveMedia deletes the photo or video at index
// DELETE /api/v1/properties/:id/media/:kind/:index
func (h *PropertyHandler) RemoveMedia(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid index"))
		return
	}

	kind := entities.MediaKind(c.Param("kind"))
	property, err := h.properties.RemoveMedia(c.Request.Context(), ownerID, id, kind, index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, property)
}

// AdminList lists every listing
// GET /api/v1/admin/properties
func (h *PropertyHandler) AdminList(c *gin.Context) {
	pagination := paginationFromQuery(c)
	properties, total, err := h.properties.AdminList(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, properties, total, pagination)
}

// AdminListUnverified lists listings waiting for verification
// GET /api/v1/admin/properties/unverified
func (h *PropertyHandler) AdminListUnverified(c *gin.Context) {
	pagination := paginationFromQuery(c)
	properties, total, err := h.properties.AdminListUnverified(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagedResponse(c, properties, total, pagination)
}

func (h *PropertyHandler) setVerified(c *gin.Context, verified bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.properties.SetVerified(c.Request.Context(), id, verified); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "isVerified": verified})
}

// Verify publishes a listing
// POST /api/v1/admin/properties/:id/verify
func (h *PropertyHandler) Verify(c *gin.Context) { h.setVerified(c, true) }

// Unverify withdraws a listing from search
// POST /api/v1/admin/properties/:id/unverify
func (h *PropertyHandler) Unverify(c *gin.Context) { h.setVerified(c, false) }
