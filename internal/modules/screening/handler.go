package screening

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/domain"
	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests", middleware.TenantOnly(), h.CreateRequest)
	rg.GET("/requests", middleware.OwnerOnly(), h.ListRequests)
	rg.PATCH("/requests/:id/status", middleware.OwnerOnly(), h.UpdateStatus)
	rg.GET("/properties/:id/my-request", middleware.TenantOnly(), h.MyRequest)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrConsentRequired):
			response.Error(c, http.StatusBadRequest, "CONSENT_REQUIRED", "Deposit structure must be agreed before submitting")
		case errors.Is(err, ErrValidation):
			var fieldErrs *FieldErrors
			if errors.As(err, &fieldErrs) {
				response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Profile fields failed validation", fieldErrs.Fields)
			} else {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Profile fields failed validation")
			}
		case errors.Is(err, ErrPropertyNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case errors.Is(err, ErrDuplicateRequest):
			response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "A pending request already exists for this property")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create request")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": ToRequestResponse(r)})
}

func (h *Handler) ListRequests(c *gin.Context) {
	filter := c.DefaultQuery("status", "ALL")

	rows, err := h.service.ListByStatus(c.Request.Context(), c.GetInt64("user_id"), filter)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status filter")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list requests")
		return
	}

	out := make([]*RequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToRequestResponse(&rows[i]))
	}

	response.Success(c, http.StatusOK, gin.H{"requests": out})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Transition(
		c.Request.Context(),
		c.Param("id"),
		domain.RequestStatus(req.Status),
		c.GetInt64("user_id"),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the property owner can decide this request")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Request is not pending or target status is invalid")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update request")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": ToRequestResponse(r)})
}

func (h *Handler) MyRequest(c *gin.Context) {
	r, err := h.service.MyRequest(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No request for this property yet")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": ToRequestResponse(r)})
}
