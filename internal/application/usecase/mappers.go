package usecase

import (
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ToCustomerResponse convierte la entidad al DTO de salida.
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

// ToOrderResponse convierte el pedido (con cliente) al DTO de salida.
func ToOrderResponse(o *entity.OrderWithCustomer) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Product:         o.Product,
		Theme:           o.Theme,
		Description:     o.Description,
		Price:           dto.Money(o.Price),
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		AdvanceAmount:   dto.Money(o.AdvanceAmount),
		PaidAmount:      dto.Money(o.PaidAmount),
		Outstanding:     dto.Money(o.Outstanding()),
		PaymentStatus:   string(o.PaymentState()),
		DeliveryDate:    o.DeliveryDate,
		DeliveryAddress: o.DeliveryAddress,
		ProductImage:    o.ProductImage,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Customer:        ToCustomerResponse(&o.Customer),
	}
}

func toCSVRow(o *entity.OrderWithCustomer) dto.OrderCSVRow {
	row := dto.OrderCSVRow{
		ID:              o.ID,
		CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04"),
		CustomerName:    o.Customer.Name,
		CustomerPhone:   o.Customer.Phone,
		Product:         o.Product,
		Theme:           o.Theme,
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		Price:           dto.Money(o.Price),
		AdvanceAmount:   dto.Money(o.AdvanceAmount),
		PaidAmount:      dto.Money(o.PaidAmount),
		Outstanding:     dto.Money(o.Outstanding()),
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
	}
	if o.DeliveryDate != nil {
		row.DeliveryDate = o.DeliveryDate.Format("2006-01-02")
	}
	return row
}
