package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sales/backend/internal/domain/shared"
	"github.com/sales/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct {
	logger *zap.Logger
}

// Success sends a 200 envelope with a single payload
func (h *BaseHandler) Success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, dto.OK(payload))
}

// SuccessList sends a 200 envelope with a collection payload and count
func (h *BaseHandler) SuccessList(c *gin.Context, count int, payload any) {
	c.JSON(http.StatusOK, dto.OKList(count, payload))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, dto.Created(payload))
}

// BadRequest sends a 400 envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Error(http.StatusBadRequest, message))
}

// HandleError maps a service error onto the envelope. Domain errors carry
// their own message; anything else is logged and withheld from the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.StatusForCode(domainErr.Code)
		c.JSON(status, dto.Error(status, domainErr.Message))
		return
	}

	h.logger.Error("unhandled request error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError,
		dto.Error(http.StatusInternalServerError, "internal server error"))
}

// parseUUIDParam reads and parses a uuid path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
