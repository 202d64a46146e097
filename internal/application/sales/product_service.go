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

// ProductService handles catalog CRUD and mirrors every change to the
// products system through the replication gateway.
type ProductService struct {
	products domain.ProductRepository
	gateway  replication.Gateway
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products domain.ProductRepository, gateway replication.Gateway, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, gateway: gateway, logger: logger}
}

// Save creates or updates a product, rejecting duplicate names within the
// company, and emits a productUpdate replication message
func (s *ProductService) Save(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	id := uuid.New()
	if req.ID != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "invalid product id")
		}
		id = parsed
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid company id")
	}

	existing, err := s.products.FindByName(ctx, companyID, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "a product with this name already exists")
	}

	product := &domain.Product{
		ID:        id,
		CompanyID: companyID,
		Name:      req.Name,
		Code:      req.Code,
		Cost:      req.Cost,
		Price:     req.Price,
		Active:    true,
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	msg, err := replication.NewMessage(replication.ProcessProductUpdate, response)
	if err != nil {
		return nil, err
	}
	if _, err := s.gateway.Send(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("product saved", zap.String("product_id", id.String()))
	return &response, nil
}

// FindByID returns one active product
func (s *ProductService) FindByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Search returns a company's active products matching the name filter
func (s *ProductService) Search(ctx context.Context, companyID uuid.UUID, req SearchRequest) ([]ProductResponse, error) {
	products, err := s.products.Search(ctx, companyID, shared.Pagination{Page: req.Page, Limit: req.Limit}, req.Name)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// Remove soft-deletes a product and emits a productDelete replication message
func (s *ProductService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return err
	}

	msg, err := replication.NewMessage(replication.ProcessProductDelete, map[string]string{"id": id.String()})
	if err != nil {
		return err
	}
	if _, err := s.gateway.Send(ctx, msg); err != nil {
		return err
	}

	s.logger.Info("product removed", zap.String("product_id", id.String()))
	return nil
}
