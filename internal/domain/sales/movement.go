package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sales/backend/internal/domain/shared"
)

// MovementType is the direction of a stock movement.
type MovementType string

// MovementReason explains why stock moved.
type MovementReason string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"

	ReasonSale       MovementReason = "SALE"
	ReasonPurchase   MovementReason = "PURCHASE"
	ReasonAdjustment MovementReason = "ADJUSTMENT"
)

// StockMovement describes one inventory-affecting event sent to the
// external products system. RelatedID ties the movement back to the order
// that caused it so a later cancellation can reverse it.
type StockMovement struct {
	Type      MovementType    `json:"type"`
	Reason    MovementReason  `json:"reason"`
	Qty       decimal.Decimal `json:"qty"`
	ProductID uuid.UUID       `json:"productId"`
	UserID    uuid.UUID       `json:"userId"`
	RelatedID uuid.UUID       `json:"relatedId,omitempty"`
}

// EffectKind classifies the replication side effect of persisting an order.
type EffectKind int

const (
	// EffectNone means the status has no stock impact (quotations).
	EffectNone EffectKind = iota
	// EffectMovements emits one OUT/SALE movement per order line.
	EffectMovements
	// EffectDelete reverses all movements previously tied to the order.
	EffectDelete
)

// StockEffect is the computed replication side effect for an order state.
// It is derived before emission so the update path can snapshot the
// previous effect for compensation.
type StockEffect struct {
	Kind      EffectKind
	OrderID   uuid.UUID
	Movements []StockMovement
}

// EffectForOrder maps an order's status to its stock-movement effect.
//
//	QUOTATION              -> no movement
//	ORDER, INVOICED, PAID  -> one OUT/SALE movement per line
//	CANCELLED              -> delete-by-related-id signal
//	anything else          -> INVALID_STATUS
func EffectForOrder(o *Order) (StockEffect, error) {
	switch o.Status {
	case OrderStatusQuotation:
		return StockEffect{Kind: EffectNone, OrderID: o.ID}, nil

	case OrderStatusOrder, OrderStatusInvoiced, OrderStatusPaid:
		movements := make([]StockMovement, 0, len(o.Lines))
		for i := range o.Lines {
			movements = append(movements, StockMovement{
				Type:      MovementOut,
				Reason:    ReasonSale,
				Qty:       o.Lines[i].Qty,
				ProductID: o.Lines[i].ProductID,
				UserID:    o.UserID,
				RelatedID: o.ID,
			})
		}
		return StockEffect{Kind: EffectMovements, OrderID: o.ID, Movements: movements}, nil

	case OrderStatusCancelled:
		return StockEffect{Kind: EffectDelete, OrderID: o.ID}, nil
	}

	return StockEffect{}, shared.ErrInvalidStatus
}
