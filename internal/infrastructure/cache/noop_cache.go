package cache

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/application/ports"
)

var _ ports.DashboardCache = NoopCache{}

// NoopCache caché deshabilitada (REDIS_ADDR vacío): siempre falla la lectura.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, any) error         { return nil }
func (NoopCache) Version(context.Context) (int64, error)         { return 0, nil }
func (NoopCache) Invalidate(context.Context) error               { return nil }
