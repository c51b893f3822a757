package repository

import (
	"time"
)

// CacheRepository определяет методы для кеширования JSON-снимков
// (статус по трек-коду, рейтинг конкурса). Значения сериализуются
// в JSON, инвалидация выполняется по ключу.
type CacheRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
