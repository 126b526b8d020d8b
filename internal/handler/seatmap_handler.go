package handler

import (
	"strconv"

	"github.com/cinetix/service-booking/internal/application"
	seatDomain "github.com/cinetix/service-booking/internal/domain/seat"
	"github.com/cinetix/service-booking/internal/response"
	"github.com/gin-gonic/gin"
)

// SeatmapHandler handles HTTP requests for seatmap management.
type SeatmapHandler struct {
	service *application.SeatmapService
}

// NewSeatmapHandler creates a new SeatmapHandler.
func NewSeatmapHandler(service *application.SeatmapService) *SeatmapHandler {
	return &SeatmapHandler{service: service}
}

// RegisterRoutes registers all seatmap routes on the given router group.
func (h *SeatmapHandler) RegisterRoutes(r *gin.RouterGroup) {
	seatmap := r.Group("/showtimes/:showtimeId/seatmap")
	{
		seatmap.POST("", h.CreateSeatmap)
		seatmap.GET("", h.GetSeatmap)
		seatmap.GET("/available", h.ListAvailable)
		seatmap.GET("/categories/:category/availability", h.GetCategoryAvailability)
		seatmap.POST("/book", h.BookSeats)
		seatmap.POST("/release", h.ReleaseSeats)
		seatmap.PATCH("/categories/:category/price", h.UpdateCategoryPrice)
	}
}

func showtimeIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("showtimeId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid showtime ID")
		return 0, false
	}
	return uint(id), true
}

func categoryParam(c *gin.Context) (seatDomain.Category, bool) {
	category, ok := seatDomain.ParseCategory(c.Param("category"))
	if !ok {
		response.BadRequest(c, "unknown seat category")
		return "", false
	}
	return category, true
}

// CreateSeatmap handles POST /api/v1/showtimes/:showtimeId/seatmap
func (h *SeatmapHandler) CreateSeatmap(c *gin.Context) {
	showtimeID, ok := showtimeIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Pricing map[string]int64 `json:"pricing"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var pricing seatDomain.CategoryPricing
	if len(req.Pricing) > 0 {
		pricing = make(seatDomain.CategoryPricing, len(req.Pricing))
		for name, price := range req.Pricing {
			category, ok := seatDomain.ParseCategory(name)
			if !ok {
				response.BadRequest(c, "unknown seat category: "+name)
				return
			}
			pricing[category] = price
		}
	}

	seats, err := h.service.CreateSeatmap(c.Request.Context(), showtimeID, pricing)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, seats)
}

// GetSeatmap handles GET /api/v1/showtimes/:showtimeId/seatmap
func (h *SeatmapHandler) GetSeatmap(c *gin.Context) {
	showtimeID, ok := showtimeIDParam(c)
	if !ok {
		return
	}

	seatmap, err := h.service.GetSeatmap(c.Request.Context(), showtimeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, seatmap)
}

// ListAvailable handles GET /api/v1/showtimes/:showtimeId/seatmap/available
func (h *SeatmapHandler) ListAvailable(c *gin.Context) {
	showtimeID, ok := showtimeIDParam(c)
	if !ok {
		return
	}

	seats, err := h.service.ListAvailable(c.Request.Context(), showtimeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, seats)
}

// GetCategoryAvailability handles
// GET /api/v1/showtimes/:showtimeId/seatmap/categories/:category/availability
func (h *SeatmapHandler) GetCategoryAvailability(c *gin.Context) {
	showtimeID, ok := showtimeIDParam(c)
	if !ok {
		return
	}
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	availability, err := h.service.GetCategoryAvailability(c.Request.Context(), showtimeID, category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, availability)
}

// BookSeats handles POST /api/v1/showtimes/:showtimeId/seatmap/book
func (h *SeatmapHandler) BookSeats(c *gin.Context) {
	showtimeID, ok := showtimeIDParam(c)
	if !ok {
		return
	}

	var req struct {
		SeatNumbers []string `json:"seat_numbers" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	seats, err := h.service.BookSeats(c.Request.Context(), showtimeID, req.SeatNumbers)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, seats)
}

// ReleaseSeats handles POST /api/v1/showtimes/:showtimeId/seatmap/release
func (h *SeatmapHandler) ReleaseSeats(c *gin.Context) {
	showtimeID, ok := showtimeIDParam(c)
	if !ok {
		return
	}

	var req struct {
		SeatNumbers []string `json:"seat_numbers" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	released, failures := h.service.ReleaseSeats(c.Request.Context(), showtimeID, req.SeatNumbers)
	response.Success(c, gin.H{
		"released": released,
		"failures": failures,
	})
}

// UpdateCategoryPrice handles
// PATCH /api/v1/showtimes/:showtimeId/seatmap/categories/:category/price
func (h *SeatmapHandler) UpdateCategoryPrice(c *gin.Context) {
	showtimeID, ok := showtimeIDParam(c)
	if !ok {
		return
	}
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	var req struct {
		Price int64 `json:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	seats, err := h.service.UpdateCategoryPrice(c.Request.Context(), showtimeID, category, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, seats)
}
