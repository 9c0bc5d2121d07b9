package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.ListProperties)
	rg.GET("/properties/:id", h.GetProperty)
}

func (h *Handler) ListProperties(c *gin.Context) {
	var f Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter parameters")
		return
	}

	properties, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown type or furnishing value")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list properties")
		return
	}

	// An empty list is a valid "no results" outcome.
	response.Success(c, http.StatusOK, gin.H{
		"properties": properties,
		"total":      len(properties),
	})
}

func (h *Handler) GetProperty(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}
