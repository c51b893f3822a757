package service

import (
	"log"
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	redisrepo "github.com/yourusername/contest-api/internal/repository/redis"
)

// TTL кеша рейтинга; рейтинг инвалидируется при каждой записи оценки,
// TTL страхует от зависших ключей
const rankingCacheTTL = time.Minute

// RankingService отдает материализованный рейтинг конкурса.
// Перестройкой рейтинга владеет сенсорный сервис; здесь только чтение
// с кешем поверх таблицы top_results.
type RankingService struct {
	topResultRepo repository.TopResultRepository
	cacheRepo     repository.CacheRepository
}

// NewRankingService создает новый сервис рейтинга
func NewRankingService(topResultRepo repository.TopResultRepository, cacheRepo repository.CacheRepository) *RankingService {
	return &RankingService{
		topResultRepo: topResultRepo,
		cacheRepo:     cacheRepo,
	}
}

// GetRanking возвращает рейтинг конкурса, упорядоченный по рангу
func (s *RankingService) GetRanking(contestID uint) ([]entity.TopResult, error) {
	var cached []entity.TopResult
	if err := s.cacheRepo.GetJSON(redisrepo.RankingKey(contestID), &cached); err == nil {
		return cached, nil
	}

	results, err := s.topResultRepo.GetByContest(contestID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheRepo.SetJSON(redisrepo.RankingKey(contestID), results, rankingCacheTTL); err != nil {
		log.Printf("[RankingService] Ошибка кеширования рейтинга конкурса #%d: %v", contestID, err)
	}
	return results, nil
}
