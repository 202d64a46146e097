package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsales "github.com/sales/backend/internal/application/sales"
)

// CompanyHandler serves the company endpoints
type CompanyHandler struct {
	BaseHandler
	service *appsales.CompanyService
	apiKey  gin.HandlerFunc
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(service *appsales.CompanyService, apiKey gin.HandlerFunc, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
		apiKey:      apiKey,
	}
}

// RegisterRoutes registers the company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	companies.GET("/searchByValues", h.Search)
	companies.GET("/:id", h.FindByID)
	companies.PATCH("/update", h.apiKey, h.Save)
	companies.DELETE("/:id", h.apiKey, h.Remove)
}

// Save creates or updates a company
func (h *CompanyHandler) Save(c *gin.Context) {
	var req appsales.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid company payload: "+err.Error())
		return
	}

	resp, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Search returns companies matching the filter
func (h *CompanyHandler) Search(c *gin.Context) {
	var req appsales.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid search filter: "+err.Error())
		return
	}

	companies, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, len(companies), companies)
}

// FindByID returns one company
func (h *CompanyHandler) FindByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid company id")
		return
	}

	company, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Remove soft-deletes a company
func (h *CompanyHandler) Remove(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid company id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id.String()})
}
