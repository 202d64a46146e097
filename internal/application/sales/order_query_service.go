package sales

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
)

// OrderQueryService serves the order read side
type OrderQueryService struct {
	orders domain.OrderRepository
}

// NewOrderQueryService creates a new OrderQueryService
func NewOrderQueryService(orders domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{orders: orders}
}

// FindByID returns one active order
func (s *OrderQueryService) FindByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Search returns the company's active orders matching the filter, newest
// first. An empty result reports NOT_FOUND, which callers surface as 404.
func (s *OrderQueryService) Search(ctx context.Context, companyID uuid.UUID, req OrderSearchRequest) ([]OrderResponse, error) {
	pagination := shared.Pagination{Page: req.Page, Limit: req.Limit}
	filter := domain.OrderSearchFilter{
		CreatedFrom:       req.CreatedFrom,
		CreatedTo:         req.CreatedTo,
		Code:              req.Code,
		CustomerNameIDDoc: req.CustomerNameIDDoc,
		Comment:           req.Comment,
	}

	orders, err := s.orders.Search(ctx, companyID, pagination, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "no orders match the given filter")
	}
	return ToOrderResponses(orders), nil
}
