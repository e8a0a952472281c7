package ports

import "context"

// DashboardCache caché de lectura para los endpoints del dashboard.
// Un fallo de caché nunca debe impedir responder desde la base de datos.
type DashboardCache interface {
	// Get deserializa en dst el valor de key. Devuelve false si no está en caché.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Version generación vigente de las entradas; forma parte de cada clave.
	Version(ctx context.Context) (int64, error)
	// Invalidate pasa a una nueva generación (tras cualquier cambio en pedidos). Las entradas
	// de generaciones anteriores dejan de leerse y caducan por TTL.
	Invalidate(ctx context.Context) error
}
