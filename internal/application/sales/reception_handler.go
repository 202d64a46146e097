package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
	"github.com/sales/backend/internal/infrastructure/replication"
)

// companyPayload is the inbound shape of a replicated company
type companyPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// userPayload is the inbound shape of a replicated user
type userPayload struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// deletePayload carries just the id of the deleted entity
type deletePayload struct {
	ID string `json:"id"`
}

// ReceptionHandler applies masterdata messages from the admin system to the
// local replicas. Unknown processes are acknowledged with a warning so they
// do not clog the stream.
type ReceptionHandler struct {
	companies *CompanyService
	users     *UserService
	logger    *zap.Logger
}

// NewReceptionHandler creates a new ReceptionHandler
func NewReceptionHandler(companies *CompanyService, users *UserService, logger *zap.Logger) *ReceptionHandler {
	return &ReceptionHandler{companies: companies, users: users, logger: logger}
}

// Handle dispatches one inbound message by its process name
func (h *ReceptionHandler) Handle(ctx context.Context, msg replication.Message) error {
	switch msg.Process {
	case replication.ProcessCompanyUpdate:
		return h.applyCompanyUpdate(ctx, msg)
	case replication.ProcessCompanyDelete:
		return h.applyCompanyDelete(ctx, msg)
	case replication.ProcessUserUpdate:
		return h.applyUserUpdate(ctx, msg)
	case replication.ProcessUserDelete:
		return h.applyUserDelete(ctx, msg)
	default:
		h.logger.Warn("unknown reception process",
			zap.String("process", msg.Process),
			zap.String("source", msg.Source),
		)
		return nil
	}
}

func (h *ReceptionHandler) applyCompanyUpdate(ctx context.Context, msg replication.Message) error {
	var payload companyPayload
	if err := msg.DecodePayload(&payload); err != nil {
		return err
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "invalid company id in replication payload")
	}
	return h.companies.Apply(ctx, &domain.Company{ID: id, Name: payload.Name, Active: true})
}

func (h *ReceptionHandler) applyCompanyDelete(ctx context.Context, msg replication.Message) error {
	id, err := h.decodeDelete(msg)
	if err != nil {
		return err
	}
	err = h.companies.Remove(ctx, id)
	// A delete for a company we never had, or already deleted, is settled.
	if err != nil && errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

func (h *ReceptionHandler) applyUserUpdate(ctx context.Context, msg replication.Message) error {
	var payload userPayload
	if err := msg.DecodePayload(&payload); err != nil {
		return err
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "invalid user id in replication payload")
	}
	companyID, err := uuid.Parse(payload.CompanyID)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "invalid company id in replication payload")
	}
	return h.users.Apply(ctx, &domain.User{
		ID:        id,
		CompanyID: companyID,
		Name:      payload.Name,
		Email:     payload.Email,
		Active:    true,
	})
}

func (h *ReceptionHandler) applyUserDelete(ctx context.Context, msg replication.Message) error {
	id, err := h.decodeDelete(msg)
	if err != nil {
		return err
	}
	err = h.users.Remove(ctx, id)
	if err != nil && errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

func (h *ReceptionHandler) decodeDelete(msg replication.Message) (uuid.UUID, error) {
	var payload deletePayload
	if err := msg.DecodePayload(&payload); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "invalid id in replication payload")
	}
	return id, nil
}

// Ensure ReceptionHandler implements replication.Handler
var _ replication.Handler = (*ReceptionHandler)(nil)
