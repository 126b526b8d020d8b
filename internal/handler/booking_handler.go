package handler

import (
	"github.com/cinetix/service-booking/internal/application"
	"github.com/cinetix/service-booking/internal/response"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles HTTP requests for the booking protocol.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.Book)
		bookings.DELETE("", h.Cancel)
		bookings.GET("", h.ListByBuyer)
	}
}

// Book handles POST /api/v1/bookings
func (h *BookingHandler) Book(c *gin.Context) {
	var req application.BookSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Cancel handles DELETE /api/v1/bookings
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req application.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"cancelled": true})
}

// ListByBuyer handles GET /api/v1/bookings?buyer_id=
func (h *BookingHandler) ListByBuyer(c *gin.Context) {
	buyerID := c.Query("buyer_id")
	if buyerID == "" {
		response.BadRequest(c, "buyer_id is required")
		return
	}

	bookings, err := h.service.ListByBuyer(c.Request.Context(), buyerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bookings)
}
