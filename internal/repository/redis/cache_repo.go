package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// Ключи кеша движка оценки
const (
	// TrackingStatusKeyFmt кеширует статус образца по публичному коду отслеживания
	TrackingStatusKeyFmt = "sample:tracking:%s"
	// RankingKeyFmt кеширует снимок рейтинга конкурса; инвалидируется при перестройке
	RankingKeyFmt = "contest:%d:ranking"
)

// CacheRepo реализует repository.CacheRepository поверх Redis:
// JSON-снимки с TTL и явная инвалидация по ключу.
type CacheRepo struct {
	client *redis.Client
	ctx    context.Context
}

// NewCacheRepo создает новый репозиторий кеша
func NewCacheRepo(client *redis.Client) (*CacheRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for CacheRepo")
	}
	return &CacheRepo{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// SetJSON сериализует значение и сохраняет его в кеше с заданным TTL
func (r *CacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, key, data, expiration).Err()
}

// GetJSON читает значение из кеша и десериализует его в dest.
// Промах кеша возвращается как ErrNotFound.
func (r *CacheRepo) GetJSON(key string, dest interface{}) error {
	data, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete инвалидирует ключ кеша
func (r *CacheRepo) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// TrackingStatusKey формирует ключ кеша статуса по коду отслеживания
func TrackingStatusKey(code string) string {
	return fmt.Sprintf(TrackingStatusKeyFmt, code)
}

// RankingKey формирует ключ кеша рейтинга конкурса
func RankingKey(contestID uint) string {
	return fmt.Sprintf(RankingKeyFmt, contestID)
}
