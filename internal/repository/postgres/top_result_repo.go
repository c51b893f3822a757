package postgres

import (
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// TopResultRepo реализует repository.TopResultRepository
type TopResultRepo struct {
	db *gorm.DB
}

// NewTopResultRepo создает новый репозиторий рейтинга
func NewTopResultRepo(db *gorm.DB) *TopResultRepo {
	return &TopResultRepo{db: db}
}

// Rebuild полностью перестраивает рейтинг конкурса ВНУТРИ ПЕРЕДАННОЙ ТРАНЗАКЦИИ.
// Алгоритм: учитываются только одобренные сенсорные оценки; по каждому образцу
// считаются средняя оценка, число оценок и дата последней оценки; ранги
// назначаются по убыванию средней с тай-брейком по дате последней оценки;
// остаются только места 1..topN. Сначала delete-all по конкурсу, затем один
// INSERT ... SELECT — частичной перезаписи не бывает, откат транзакции
// откатывает и рейтинг, и породившую его запись.
func (r *TopResultRepo) Rebuild(tx *gorm.DB, contestID uint, topN int) error {
	if err := tx.Where("contest_id = ?", contestID).Delete(&entity.TopResult{}).Error; err != nil {
		log.Printf("Error clearing top results for contest %d within transaction: %v", contestID, err)
		return err
	}

	// ROW_NUMBER вместо RANK: инвариант требует непрерывные ранги, начинающиеся
	// с 1; sample_id в конце ORDER BY делает порядок детерминированным.
	sql := `
	INSERT INTO top_results (contest_id, sample_id, average_score, evaluations_count, last_evaluated_at, rank, created_at, updated_at)
	SELECT contest_id, sample_id, average_score, evaluations_count, last_evaluated_at, rank, NOW(), NOW()
	FROM (
	    SELECT
	        s.contest_id,
	        se.sample_id,
	        AVG(se.overall_quality)  AS average_score,
	        COUNT(*)                 AS evaluations_count,
	        MAX(se.updated_at)       AS last_evaluated_at,
	        ROW_NUMBER() OVER (
	            PARTITION BY s.contest_id
	            ORDER BY AVG(se.overall_quality) DESC, MAX(se.updated_at) DESC, se.sample_id ASC
	        ) AS rank
	    FROM sensory_evaluations se
	    JOIN samples s ON s.id = se.sample_id
	    WHERE se.verdict = 'approved'
	      AND se.overall_quality IS NOT NULL
	      AND s.contest_id = ?
	    GROUP BY s.contest_id, se.sample_id
	) ranked
	WHERE ranked.rank <= ?;`

	if err := tx.Exec(sql, contestID, topN).Error; err != nil {
		log.Printf("Error rebuilding top results for contest %d within transaction: %v", contestID, err)
		return err
	}

	log.Printf("[TopResultRepo] Top results rebuilt for contest %d within transaction", contestID)
	return nil
}

// GetByContest возвращает текущий рейтинг конкурса, отсортированный по рангу
func (r *TopResultRepo) GetByContest(contestID uint) ([]entity.TopResult, error) {
	var results []entity.TopResult
	err := r.db.Where("contest_id = ?", contestID).
		Order("rank ASC").
		Find(&results).Error
	return results, err
}

// GetTopSamples возвращает строки рейтинга на первых limit местах.
// Читает внутри переданной транзакции, чтобы видеть только что
// перестроенный рейтинг.
func (r *TopResultRepo) GetTopSamples(tx *gorm.DB, contestID uint, limit int) ([]entity.TopResult, error) {
	conn := tx
	if conn == nil {
		conn = r.db
	}
	var results []entity.TopResult
	err := conn.Where("contest_id = ? AND rank <= ?", contestID, limit).
		Order("rank ASC").
		Find(&results).Error
	return results, err
}
