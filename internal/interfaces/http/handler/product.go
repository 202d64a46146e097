package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsales "github.com/sales/backend/internal/application/sales"
)

// ProductHandler serves the product endpoints
type ProductHandler struct {
	BaseHandler
	service *appsales.ProductService
	apiKey  gin.HandlerFunc
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *appsales.ProductService, apiKey gin.HandlerFunc, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
		apiKey:      apiKey,
	}
}

// RegisterRoutes registers the product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("/searchByValues/:companyId", h.Search)
	products.GET("/:id", h.FindByID)
	products.PATCH("/update", h.apiKey, h.Save)
	products.DELETE("/:id", h.apiKey, h.Remove)
}

// Save creates or updates a product
func (h *ProductHandler) Save(c *gin.Context) {
	var req appsales.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid product payload: "+err.Error())
		return
	}

	resp, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Search returns a company's products matching the filter
func (h *ProductHandler) Search(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "companyId")
	if !ok {
		h.BadRequest(c, "invalid company id")
		return
	}

	var req appsales.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid search filter: "+err.Error())
		return
	}

	products, err := h.service.Search(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, len(products), products)
}

// FindByID returns one product
func (h *ProductHandler) FindByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Remove soft-deletes a product and replicates the deletion
func (h *ProductHandler) Remove(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id.String()})
}
