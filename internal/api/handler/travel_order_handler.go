package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/internal/service"
	"github.com/leandrovr13/onfly/pkg/response"
)

// TravelOrderHandler travel order endpoints
type TravelOrderHandler struct {
	travelOrderSvc service.TravelOrderService
}

// NewTravelOrderHandler creates a TravelOrderHandler
func NewTravelOrderHandler(travelOrderSvc service.TravelOrderService) *TravelOrderHandler {
	return &TravelOrderHandler{travelOrderSvc: travelOrderSvc}
}

// List filtered, paginated travel orders
// GET /api/v1/travel-orders?status=&id=&destination=&start_date=&end_date=&page=
func (h *TravelOrderHandler) List(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.TravelOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, total, err := h.travelOrderSvc.List(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), model.TravelOrderPageSize)
}

// Create
// POST /api/v1/travel-orders
func (h *TravelOrderHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateTravelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.travelOrderSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, order)
}

// Get
// GET /api/v1/travel-orders/:id
func (h *TravelOrderHandler) Get(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.travelOrderSvc.Get(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, order)
}

// UpdateStatus admin status change
// PATCH /api/v1/travel-orders/:id/status
func (h *TravelOrderHandler) UpdateStatus(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req dto.UpdateTravelOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.travelOrderSvc.UpdateStatus(c.Request.Context(), p, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, order)
}

// parseOrderID a non-numeric id cannot name an order
func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, service.ErrTravelOrderNotFound)
		return 0, false
	}
	return id, true
}
