package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
)

// UserService handles salesperson CRUD. Like companies, users are mastered
// in the admin system and replicated here.
type UserService struct {
	users  domain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users domain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Save creates or updates a user, rejecting duplicate emails
func (s *UserService) Save(ctx context.Context, req UserRequest) (*UserResponse, error) {
	id := uuid.New()
	if req.ID != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "invalid user id")
		}
		id = parsed
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid company id")
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "a user with this email already exists")
	}

	user := &domain.User{ID: id, CompanyID: companyID, Name: req.Name, Email: req.Email, Active: true}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user saved", zap.String("user_id", id.String()))
	response := ToUserResponse(user)
	return &response, nil
}

// FindByID returns one active user
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Search returns a company's active users matching the name filter
func (s *UserService) Search(ctx context.Context, companyID uuid.UUID, req SearchRequest) ([]UserResponse, error) {
	users, err := s.users.Search(ctx, companyID, shared.Pagination{Page: req.Page, Limit: req.Limit}, req.Name)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// Remove soft-deletes a user
func (s *UserService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user removed", zap.String("user_id", id.String()))
	return nil
}

// Apply upserts a user replicated from the admin system
func (s *UserService) Apply(ctx context.Context, user *domain.User) error {
	return s.users.Save(ctx, user)
}
