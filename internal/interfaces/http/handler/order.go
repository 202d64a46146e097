package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsales "github.com/sales/backend/internal/application/sales"
)

// OrderHandler serves the order endpoints
type OrderHandler struct {
	BaseHandler
	service *appsales.OrderService
	queries *appsales.OrderQueryService
	apiKey  gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *appsales.OrderService, queries *appsales.OrderQueryService, apiKey gin.HandlerFunc, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
		queries:     queries,
		apiKey:      apiKey,
	}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.GET("/searchByValues/:companyId", h.Search)
	orders.GET("/:id", h.FindByID)
	orders.PATCH("/update", h.apiKey, h.Save)
	orders.DELETE("/:id", h.apiKey, h.Remove)
}

// Save creates or updates an order depending on the presence of an id
func (h *OrderHandler) Save(c *gin.Context) {
	var req appsales.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid order payload: "+err.Error())
		return
	}

	resp, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Search returns a company's orders matching the filter
func (h *OrderHandler) Search(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId")
	if !ok {
		h.BadRequest(c, "invalid company id")
		return
	}

	var req appsales.OrderSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid search filter: "+err.Error())
		return
	}

	orders, err := h.queries.Search(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, len(orders), orders)
}

// FindByID returns one order
func (h *OrderHandler) FindByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.queries.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Remove soft-deletes an order
func (h *OrderHandler) Remove(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id.String()})
}
