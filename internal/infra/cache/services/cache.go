package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
)

const keyPrefix = "slots:service:"

// Cache read-through кэш каталога услуг в Redis.
// Ошибки Redis не прерывают запрос: кэш пропускается и данные читаются из репозитория
type Cache struct {
	client *redis.Client
	repo   ServiceRepository
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш поверх репозитория
func NewCache(client *redis.Client, repo ServiceRepository, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}

type cachedService struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// GetByIDs возвращает услуги из кэша, а промахи догружает из репозитория.
// Отсутствующие в каталоге id не кэшируются.
// Каталог меняется вне сервиса, поэтому явной инвалидации нет: изменение длительности
// или удаление услуги становится видно расчету слотов не позже чем через ttl
func (c *Cache) GetByIDs(ctx context.Context, ids []string) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}

	result := make([]domain.Service, 0, len(ids))
	misses := make([]string, 0, len(ids))

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("ServiceCache: MGET failed, falling back to repository: %v", err)
		return c.repo.GetByIDs(ctx, ids)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			misses = append(misses, ids[i])
			continue
		}

		var cached cachedService
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			c.logger.Warn("ServiceCache: corrupt entry for service %s: %v", ids[i], err)
			misses = append(misses, ids[i])
			continue
		}

		result = append(result, domain.Service{
			ID:              ids[i],
			Name:            cached.Name,
			DurationMinutes: cached.DurationMinutes,
		})
	}

	if len(misses) == 0 {
		return result, nil
	}

	loaded, err := c.repo.GetByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}

	c.store(ctx, loaded)

	return append(result, loaded...), nil
}

func (c *Cache) store(ctx context.Context, loaded []domain.Service) {
	if len(loaded) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, s := range loaded {
		data, err := json.Marshal(cachedService{Name: s.Name, DurationMinutes: s.DurationMinutes})
		if err != nil {
			continue
		}
		pipe.Set(ctx, key(s.ID), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("ServiceCache: failed to store %d services: %v", len(loaded), err)
	}
}

func key(id string) string {
	return keyPrefix + id
}
