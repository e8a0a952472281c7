// Package cache implementa ports.DashboardCache sobre Redis y una variante nula.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/ports"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// versionKey contador de generación; no caduca.
const versionKey = "dashboard:version"

var _ ports.DashboardCache = (*RedisDashboardCache)(nil)

// RedisDashboardCache guarda las respuestas del dashboard como JSON con TTL.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisClient abre la conexión y verifica con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return client, nil
}

// NewRedisDashboardCache construye la caché. El llamador conserva la propiedad del cliente.
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisDashboardCache {
	return &RedisDashboardCache{client: client, ttl: ttl, log: log.Named("cache")}
}

// Get deserializa en dst. (false, nil) si la clave no está.
func (c *RedisDashboardCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// entrada corrupta: se trata como fallo de caché y se recalcula
		c.log.Warn().Err(err).Str("key", key).Msg("entrada de caché ilegible")
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// Set guarda value serializado con el TTL configurado.
func (c *RedisDashboardCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Version generación vigente; 0 si el contador aún no existe.
func (c *RedisDashboardCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", versionKey, err)
	}
	return v, nil
}

// Invalidate incrementa la generación con INCR. Una carga que empezó antes guarda su
// resultado bajo la generación anterior, que ya nadie lee.
func (c *RedisDashboardCache) Invalidate(ctx context.Context) error {
	v, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr %s: %w", versionKey, err)
	}
	c.log.Debug().Int64("version", v).Msg("caché del dashboard invalidada")
	return nil
}
