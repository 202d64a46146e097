package sales

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
	"github.com/sales/backend/internal/infrastructure/replication"
)

// OrderService handles the order write lifecycle. The database transaction
// and the replication send are not atomic: the service compensates after a
// failed send instead.
type OrderService struct {
	orders    domain.OrderRepository
	companies domain.CompanyRepository
	users     domain.UserRepository
	products  domain.ProductRepository
	gateway   replication.Gateway
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders domain.OrderRepository,
	companies domain.CompanyRepository,
	users domain.UserRepository,
	products domain.ProductRepository,
	gateway replication.Gateway,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		companies: companies,
		users:     users,
		products:  products,
		gateway:   gateway,
		logger:    logger,
	}
}

// Save creates or updates an order depending on whether the request carries
// an id
func (s *OrderService) Save(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	if req.ID == "" {
		return s.create(ctx, req)
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid order id")
	}
	return s.update(ctx, id, req)
}

// create persists a new order and emits its stock effect. When the emit
// fails the created order is deleted again so the admin system and this
// service do not diverge.
func (s *OrderService) create(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	companyID, userID, err := s.resolveOwnership(ctx, req)
	if err != nil {
		return nil, err
	}

	order := domain.NewOrder(companyID, userID)
	if err := s.applyRequest(ctx, order, req); err != nil {
		return nil, err
	}

	effect, err := domain.EffectForOrder(order)
	if err != nil {
		return nil, err
	}

	err = runSaga(ctx, s.logger, []sagaStep{
		{
			name: "persist order",
			run: func(ctx context.Context) error {
				return s.orders.Create(ctx, order)
			},
			compensate: func(ctx context.Context) error {
				return s.orders.SoftDelete(ctx, order.ID)
			},
		},
		{
			name: "emit stock effect",
			run: func(ctx context.Context) error {
				return s.emit(ctx, effect)
			},
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("code", domain.FormatCode(order.Code)),
		zap.String("company_id", companyID.String()),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// update rewrites an existing order and emits the effect of its new state.
// The previous effect is snapshotted first: when the new emit fails it is
// re-sent so the products system keeps the last coherent state. The order
// fields themselves are not rolled back.
func (s *OrderService) update(ctx context.Context, id uuid.UUID, req OrderRequest) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous, err := domain.EffectForOrder(order)
	if err != nil {
		s.logger.Warn("stored order has no computable stock effect",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		previous = domain.StockEffect{Kind: domain.EffectNone, OrderID: id}
	}

	if err := s.applyRequest(ctx, order, req); err != nil {
		return nil, err
	}

	effect, err := domain.EffectForOrder(order)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.emit(ctx, effect); err != nil {
		if rerr := s.emit(ctx, previous); rerr != nil {
			s.logger.Error("failed to restore previous stock effect",
				zap.String("order_id", id.String()),
				zap.Error(rerr),
			)
		}
		return nil, err
	}

	s.logger.Info("order updated",
		zap.String("order_id", id.String()),
		zap.Int("status", int(order.Status)),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// Remove soft-deletes an order. The row stays behind for audit; a second
// remove of the same order reports NOT_FOUND.
func (s *OrderService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order removed", zap.String("order_id", id.String()))
	return nil
}

// resolveOwnership validates that the company and user on the request exist
// and are active
func (s *OrderService) resolveOwnership(ctx context.Context, req OrderRequest) (companyID, userID uuid.UUID, err error) {
	companyID, err = uuid.Parse(req.CompanyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, shared.NewDomainError("INVALID_INPUT", "invalid company id")
	}
	userID, err = uuid.Parse(req.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, shared.NewDomainError("INVALID_INPUT", "invalid user id")
	}

	exists, err := s.companies.ExistsActive(ctx, companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, uuid.Nil, shared.NewDomainError("NOT_FOUND", "company not found")
	}

	exists, err = s.users.ExistsActive(ctx, userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, uuid.Nil, shared.NewDomainError("NOT_FOUND", "user not found")
	}
	return companyID, userID, nil
}

// applyRequest copies the request onto the order, resolves the line set
// from the catalog and validates the result
func (s *OrderService) applyRequest(ctx context.Context, order *domain.Order, req OrderRequest) error {
	order.CustomerIDDoc = req.CustomerIDDoc
	order.CustomerName = req.CustomerName
	order.CustomerEmail = req.CustomerEmail
	order.CustomerPhone = req.CustomerPhone
	order.CustomerAddress = req.CustomerAddress
	order.Comment = req.Comment
	order.Discount = req.Discount
	order.DiscountPct = req.DiscountPct
	order.Status = domain.OrderStatus(req.Status)

	lines, err := s.resolveLines(ctx, req.Lines)
	if err != nil {
		return err
	}
	order.ReplaceLines(lines)

	order.Normalize()
	return order.Validate()
}

// resolveLines turns line requests into order lines, copying name, code,
// cost and price from the catalog so historical orders keep their prices
func (s *OrderService) resolveLines(ctx context.Context, reqs []OrderLineRequest) ([]domain.OrderLine, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(reqs))
	for _, lr := range reqs {
		id, err := uuid.Parse(lr.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "invalid product id")
		}
		ids = append(ids, id)
	}

	products, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]domain.OrderLine, 0, len(reqs))
	for i, lr := range reqs {
		product, ok := byID[ids[i]]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "product not found: "+lr.ProductID)
		}
		status := lr.Status
		if status == 0 {
			status = 1
		}
		lines = append(lines, domain.OrderLine{
			ProductID:   product.ID,
			Name:        product.Name,
			Code:        product.Code,
			Qty:         lr.Qty,
			Comment:     lr.Comment,
			Cost:        product.Cost,
			Price:       product.Price,
			Discount:    lr.Discount,
			DiscountPct: lr.DiscountPct,
			Status:      status,
		})
	}
	return lines, nil
}

// emit sends the stock effect through the replication gateway
func (s *OrderService) emit(ctx context.Context, effect domain.StockEffect) error {
	var (
		msg replication.Message
		err error
	)

	switch effect.Kind {
	case domain.EffectNone:
		return nil
	case domain.EffectMovements:
		msg, err = replication.NewMessage(replication.ProcessMovementUpdate, effect.Movements)
	case domain.EffectDelete:
		msg, err = replication.NewMessage(replication.ProcessMovementDelete, map[string]string{
			"id": effect.OrderID.String(),
		})
	}
	if err != nil {
		return err
	}

	id, err := s.gateway.Send(ctx, msg)
	if err != nil {
		return err
	}

	s.logger.Debug("stock effect emitted",
		zap.String("order_id", effect.OrderID.String()),
		zap.String("process", msg.Process),
		zap.String("message_id", id),
	)
	return nil
}
