package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

func TestBuildOrderWhere_Vacio(t *testing.T) {
	where, args := buildOrderWhere(repository.OrderFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildOrderWhere_Combinado(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	where, args := buildOrderWhere(repository.OrderFilter{
		Status:        entity.OrderStatusPending,
		PaymentMethod: entity.PaymentAdvance,
		Search:        "agenda",
		StartDate:     &start,
		EndDate:       &end,
	})
	assert.Equal(t,
		"WHERE o.status = $1 AND o.payment_method = $2 AND (c.name ILIKE $3 OR o.product ILIKE $3)"+
			" AND o.created_at >= $4 AND o.created_at <= $5",
		where)
	assert.Equal(t, []any{"pending", "advance", "%agenda%", start, end}, args)
}

func TestBuildOrderWhere_EscapaComodines(t *testing.T) {
	_, args := buildOrderWhere(repository.OrderFilter{Search: `50%_off\`})
	assert.Equal(t, []any{`%50\%\_off\\%`}, args)
}

func TestBuildOrderWhere_Entrega(t *testing.T) {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	where, args := buildOrderWhere(repository.OrderFilter{CustomerID: "c1", DeliveryFrom: &from})
	assert.Equal(t, "WHERE o.customer_id = $1 AND o.delivery_date >= $2", where)
	assert.Len(t, args, 2)
}

func TestBuildOrderSet(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	status := entity.OrderStatusCompleted
	paid := decimal.RequireFromString("20.00")

	set, args := buildOrderSet("o1", repository.OrderPatch{
		Status:            &status,
		PaidAmount:        &paid,
		ClearDeliveryDate: true,
	}, now)
	assert.Equal(t, "updated_at = $2, status = $3, paid_amount = $4, delivery_date = NULL", set)
	assert.Equal(t, []any{"o1", now, "completed", paid}, args)
}

func TestBuildOrderSet_SoloUpdatedAt(t *testing.T) {
	set, args := buildOrderSet("o1", repository.OrderPatch{}, "t")
	assert.Equal(t, "updated_at = $2", set)
	assert.Equal(t, []any{"o1", "t"}, args)
}
