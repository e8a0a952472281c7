package entity

import "time"

// Customer representa un cliente del taller. El teléfono actúa como clave natural:
// un pedido con un teléfono ya registrado se asocia al cliente existente.
type Customer struct {
	ID        string
	Name      string
	Phone     string // sin normalizar: "600 111 222" y "600111222" son clientes distintos
	Email     string // opcional
	Address   string // opcional
	CreatedAt time.Time
}
