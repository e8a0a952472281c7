package dto

import "time"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"max=500"`
}

// UpdateCustomerRequest body para PATCH /api/customers/:id. Solo se modifican los campos presentes.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,min=1,max=50"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomerStatsDTO resumen de compras de un cliente.
type CustomerStatsDTO struct {
	CustomerID    string     `json:"customerId"`
	TotalOrders   int        `json:"totalOrders"`
	TotalSpent    string     `json:"totalSpent"` // suma de price, no de paidAmount
	LastOrderDate *time.Time `json:"lastOrderDate"`
}
