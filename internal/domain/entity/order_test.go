package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func TestOrder_PaymentState(t *testing.T) {
	o := entity.Order{Price: decimal.RequireFromString("20.00")}

	o.PaidAmount = decimal.Zero
	assert.Equal(t, entity.PaymentStatePending, o.PaymentState())
	assert.Equal(t, "20", o.Outstanding().String())

	o.PaidAmount = decimal.RequireFromString("5.00")
	assert.Equal(t, entity.PaymentStatePartial, o.PaymentState())
	assert.Equal(t, "15", o.Outstanding().String())

	o.PaidAmount = decimal.RequireFromString("25.00")
	assert.Equal(t, entity.PaymentStatePaid, o.PaymentState())
	assert.True(t, o.Outstanding().IsZero(), "lo pendiente nunca es negativo")
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, entity.OrderStatusPending.Active())
	assert.True(t, entity.OrderStatusInProgress.Active())
	assert.False(t, entity.OrderStatusCompleted.Active())
	assert.False(t, entity.OrderStatus("cancelled").Valid())
	assert.True(t, entity.PaymentAdvance.Valid())
	assert.False(t, entity.PaymentMethod("card").Valid())
}
