package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsales "github.com/sales/backend/internal/application/sales"
)

// UserHandler serves the user endpoints
type UserHandler struct {
	BaseHandler
	service *appsales.UserService
	apiKey  gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *appsales.UserService, apiKey gin.HandlerFunc, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
		apiKey:      apiKey,
	}
}

// RegisterRoutes registers the user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("/searchByValues/:companyId", h.Search)
	users.GET("/:id", h.FindByID)
	users.PATCH("/update", h.apiKey, h.Save)
	users.DELETE("/:id", h.apiKey, h.Remove)
}

// Save creates or updates a user
func (h *UserHandler) Save(c *gin.Context) {
	var req appsales.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid user payload: "+err.Error())
		return
	}

	resp, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Search returns a company's users matching the filter
func (h *UserHandler) Search(c *gin.Context) {
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

	users, err := h.service.Search(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, len(users), users)
}

// FindByID returns one user
func (h *UserHandler) FindByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Remove soft-deletes a user
func (h *UserHandler) Remove(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "invalid user id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id.String()})
}
