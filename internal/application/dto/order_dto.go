package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders. El cliente se resuelve por teléfono.
// Si PaidAmount no se envía se deriva de la forma de pago.
type CreateOrderRequest struct {
	CustomerName    string           `json:"customerName" validate:"required,max=200"`
	CustomerPhone   string           `json:"customerPhone" validate:"required,max=50"`
	CustomerEmail   string           `json:"customerEmail" validate:"omitempty,email"`
	Product         string           `json:"product" validate:"required,max=200"`
	Theme           string           `json:"theme" validate:"max=200"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price" validate:"required,money"`
	Status          string           `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required,oneof=delivery advance full"`
	AdvanceAmount   *decimal.Decimal `json:"advanceAmount" validate:"omitempty,money"`
	PaidAmount      *decimal.Decimal `json:"paidAmount" validate:"omitempty,money"`
	DeliveryDate    string           `json:"deliveryDate" validate:"omitempty,anydate"`
	DeliveryAddress string           `json:"deliveryAddress"`
	ProductImage    string           `json:"productImage" validate:"omitempty,url"`
	Notes           string           `json:"notes"`
}

// UpdateOrderRequest body para PATCH /api/orders/:id. Solo se aplican los campos presentes;
// deliveryDate vacío ("") borra la fecha de entrega.
type UpdateOrderRequest struct {
	Product         *string          `json:"product" validate:"omitempty,min=1,max=200"`
	Theme           *string          `json:"theme" validate:"omitempty,max=200"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty,money"`
	Status          *string          `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	PaymentMethod   *string          `json:"paymentMethod" validate:"omitempty,oneof=delivery advance full"`
	AdvanceAmount   *decimal.Decimal `json:"advanceAmount" validate:"omitempty,money"`
	PaidAmount      *decimal.Decimal `json:"paidAmount" validate:"omitempty,money"`
	DeliveryDate    *string          `json:"deliveryDate" validate:"omitempty,anydate"`
	DeliveryAddress *string          `json:"deliveryAddress"`
	ProductImage    *string          `json:"productImage" validate:"omitempty,url"`
	Notes           *string          `json:"notes"`
}

// OrderListQuery filtros de GET /api/orders (query string). "all" equivale a sin filtro.
type OrderListQuery struct {
	Status        string `query:"status" validate:"omitempty,oneof=all pending in_progress completed"`
	PaymentMethod string `query:"paymentMethod" validate:"omitempty,oneof=all delivery advance full"`
	CustomerID    string `query:"customerId"`
	Search        string `query:"search"`
	StartDate     string `query:"startDate" validate:"omitempty,anydate"`
	EndDate       string `query:"endDate" validate:"omitempty,anydate"`
	DeliveryFrom  string `query:"deliveryFrom" validate:"omitempty,anydate"`
	DeliveryTo    string `query:"deliveryTo" validate:"omitempty,anydate"`
}

// OrderResponse pedido con su cliente. Los importes van como texto con dos decimales.
type OrderResponse struct {
	ID              string           `json:"id"`
	CustomerID      string           `json:"customerId"`
	Product         string           `json:"product"`
	Theme           string           `json:"theme,omitempty"`
	Description     string           `json:"description,omitempty"`
	Price           string           `json:"price"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"paymentMethod"`
	AdvanceAmount   string           `json:"advanceAmount"`
	PaidAmount      string           `json:"paidAmount"`
	Outstanding     string           `json:"outstanding"`
	PaymentStatus   string           `json:"paymentStatus"` // paid | partial | pending
	DeliveryDate    *time.Time       `json:"deliveryDate"`
	DeliveryAddress string           `json:"deliveryAddress,omitempty"`
	ProductImage    string           `json:"productImage,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	Customer        CustomerResponse `json:"customer"`
}

// ImageUploadResponse respuesta de POST /api/orders/:id/image.
type ImageUploadResponse struct {
	ImageURL string        `json:"imageUrl"`
	Order    OrderResponse `json:"order"`
}

// OrderCSVRow fila del export CSV de pedidos.
type OrderCSVRow struct {
	ID              string `csv:"id"`
	CreatedAt       string `csv:"created_at"`
	CustomerName    string `csv:"customer_name"`
	CustomerPhone   string `csv:"customer_phone"`
	Product         string `csv:"product"`
	Theme           string `csv:"theme"`
	Status          string `csv:"status"`
	PaymentMethod   string `csv:"payment_method"`
	Price           string `csv:"price"`
	AdvanceAmount   string `csv:"advance_amount"`
	PaidAmount      string `csv:"paid_amount"`
	Outstanding     string `csv:"outstanding"`
	DeliveryDate    string `csv:"delivery_date"`
	DeliveryAddress string `csv:"delivery_address"`
	Notes           string `csv:"notes"`
}
