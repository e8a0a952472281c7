package postgres

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
)

func TestWrapErr_Disponibilidad(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	cases := map[string]struct {
		err      error
		upstream bool
	}{
		"conexión rechazada": {refused, true},
		"timeout de contexto": {context.DeadlineExceeded, true},
		"violación de check":  {&pgconn.PgError{Code: "23514"}, false},
		"error genérico":      {errors.New("boom"), false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := wrapErr("list orders", tc.err)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.upstream, errors.Is(err, domain.ErrUpstream))
			assert.Contains(t, err.Error(), "list orders")
		})
	}
}

// Con PostgreSQL caído los repositorios devuelven ErrUpstream (502), no un error interno.
func TestRepositorios_BaseDeDatosCaida(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// pgxpool conecta en diferido: el fallo aparece en la primera consulta.
	pool, err := pgxpool.New(ctx, "postgres://u:p@127.0.0.1:1/pedidos?sslmode=disable&connect_timeout=2")
	require.NoError(t, err)
	defer pool.Close()

	_, err = NewCustomerRepository(pool).List(ctx)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = NewOrderRepository(pool).GetByID(ctx, "o1")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = NewAnalyticsRepository(pool).GetStatusDistribution(ctx)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
