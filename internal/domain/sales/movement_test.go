package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sales/backend/internal/domain/shared"
)

func TestEffectForOrderQuotationHasNoMovement(t *testing.T) {
	order := NewOrder(uuid.New(), uuid.New())
	order.Status = OrderStatusQuotation
	order.ReplaceLines([]OrderLine{testLine(2, 10, 20)})

	effect, err := EffectForOrder(order)

	require.NoError(t, err)
	assert.Equal(t, EffectNone, effect.Kind)
	assert.Empty(t, effect.Movements)
}

func TestEffectForOrderEmitsOneMovementPerLine(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusOrder, OrderStatusInvoiced, OrderStatusPaid} {
		t.Run(status.String(), func(t *testing.T) {
			order := NewOrder(uuid.New(), uuid.New())
			order.Status = status
			order.ReplaceLines([]OrderLine{
				testLine(2, 10, 20),
				testLine(5, 1, 3),
			})

			effect, err := EffectForOrder(order)

			require.NoError(t, err)
			assert.Equal(t, EffectMovements, effect.Kind)
			require.Len(t, effect.Movements, 2)
			for i, movement := range effect.Movements {
				assert.Equal(t, MovementOut, movement.Type)
				assert.Equal(t, ReasonSale, movement.Reason)
				assert.Equal(t, order.Lines[i].ProductID, movement.ProductID)
				assert.True(t, movement.Qty.Equal(order.Lines[i].Qty))
				assert.Equal(t, order.UserID, movement.UserID)
				assert.Equal(t, order.ID, movement.RelatedID)
			}
		})
	}
}

func TestEffectForOrderCancelledIsDeleteByRelatedID(t *testing.T) {
	order := NewOrder(uuid.New(), uuid.New())
	order.Status = OrderStatusCancelled
	order.ReplaceLines([]OrderLine{testLine(1, 1, 1)})

	effect, err := EffectForOrder(order)

	require.NoError(t, err)
	assert.Equal(t, EffectDelete, effect.Kind)
	assert.Equal(t, order.ID, effect.OrderID)
	assert.Empty(t, effect.Movements)
}

func TestEffectForOrderRejectsStatusesWithoutStockSemantics(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusNew, OrderStatus(42)} {
		order := NewOrder(uuid.New(), uuid.New())
		order.Status = status

		_, err := EffectForOrder(order)

		assert.ErrorIs(t, err, shared.ErrInvalidStatus, "status %d", status)
	}
}

func TestStockMovementQtyKeepsFractions(t *testing.T) {
	order := NewOrder(uuid.New(), uuid.New())
	order.Status = OrderStatusOrder
	line := testLine(1, 1, 1)
	line.Qty = decimal.RequireFromString("2.5")
	order.ReplaceLines([]OrderLine{line})

	effect, err := EffectForOrder(order)

	require.NoError(t, err)
	require.Len(t, effect.Movements, 1)
	assert.Equal(t, "2.5", effect.Movements[0].Qty.String())
}
