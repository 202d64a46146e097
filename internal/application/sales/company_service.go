package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
)

// CompanyService handles company CRUD. Companies are mastered in the admin
// system; the local copy is written both by the API and by the reception
// worker.
type CompanyService struct {
	companies domain.CompanyRepository
	logger    *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companies domain.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{companies: companies, logger: logger}
}

// Save creates or updates a company, rejecting duplicate names
func (s *CompanyService) Save(ctx context.Context, req CompanyRequest) (*CompanyResponse, error) {
	id := uuid.New()
	if req.ID != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "invalid company id")
		}
		id = parsed
	}

	existing, err := s.companies.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "a company with this name already exists")
	}

	company := &domain.Company{ID: id, Name: req.Name, Active: true}
	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info("company saved", zap.String("company_id", id.String()))
	response := ToCompanyResponse(company)
	return &response, nil
}

// FindByID returns one active company
func (s *CompanyService) FindByID(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// Search returns active companies matching the name filter
func (s *CompanyService) Search(ctx context.Context, req SearchRequest) ([]CompanyResponse, error) {
	companies, err := s.companies.Search(ctx, shared.Pagination{Page: req.Page, Limit: req.Limit}, req.Name)
	if err != nil {
		return nil, err
	}
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses, nil
}

// Remove soft-deletes a company
func (s *CompanyService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.companies.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("company removed", zap.String("company_id", id.String()))
	return nil
}

// Apply upserts a company replicated from the admin system. Inbound data is
// authoritative, so no duplicate-name check happens here.
func (s *CompanyService) Apply(ctx context.Context, company *domain.Company) error {
	return s.companies.Save(ctx, company)
}
