package service

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	redisrepo "github.com/yourusername/contest-api/internal/repository/redis"
)

// Число призовых мест, о которых уведомляются владельцы образцов
const topNotifyLimit = 3

// SensoryService реализует сенсорную оценку и перестройку рейтинга.
// Каждая запись или удаление оценки перестраивает рейтинг конкурса
// внутри той же транзакции: читатели никогда не видят рейтинг,
// не согласованный с таблицей оценок.
type SensoryService struct {
	sensoryRepo     repository.SensoryEvaluationRepository
	assignmentRepo  repository.AssignmentRepository
	sampleRepo      repository.SampleRepository
	topResultRepo   repository.TopResultRepository
	notificationSvc *NotificationService
	cacheRepo       repository.CacheRepository
	db              *gorm.DB
	topN            int
}

// NewSensoryService создает новый сервис сенсорной оценки
func NewSensoryService(
	sensoryRepo repository.SensoryEvaluationRepository,
	assignmentRepo repository.AssignmentRepository,
	sampleRepo repository.SampleRepository,
	topResultRepo repository.TopResultRepository,
	notificationSvc *NotificationService,
	cacheRepo repository.CacheRepository,
	db *gorm.DB,
	cfg *config.Config,
) *SensoryService {
	topN := cfg.Ranking.TopN
	if topN <= 0 {
		topN = 50
	}
	return &SensoryService{
		sensoryRepo:     sensoryRepo,
		assignmentRepo:  assignmentRepo,
		sampleRepo:      sampleRepo,
		topResultRepo:   topResultRepo,
		notificationSvc: notificationSvc,
		cacheRepo:       cacheRepo,
		db:              db,
		topN:            topN,
	}
}

// SubmitEvaluation сохраняет (или перезаписывает) сенсорную оценку судьи.
// Судья должен быть назначен на образец, образец — одобрен физической
// оценкой. Итоги и вердикт вычисляются здесь, клиентские значения
// игнорируются. В той же транзакции помечается назначение, при
// необходимости закрывается образец и перестраивается рейтинг конкурса.
func (s *SensoryService) SubmitEvaluation(judgeID uint, eval *entity.SensoryEvaluation) (*entity.SensoryEvaluation, error) {
	eval.JudgeID = judgeID
	if err := eval.ValidateScores(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if _, err := s.assignmentRepo.Get(eval.SampleID, judgeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: judge %d is not assigned to sample %d",
				apperrors.ErrForbidden, judgeID, eval.SampleID)
		}
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during sensory SubmitEvaluation transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	sample, err := s.sampleRepo.GetByIDForUpdate(tx, eval.SampleID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if sample.Status != entity.SampleStatusApproved && sample.Status != entity.SampleStatusEvaluated {
		tx.Rollback()
		return nil, fmt.Errorf("%w: sensory evaluation is not allowed in status %s",
			apperrors.ErrInvalidTransition, sample.Status)
	}

	eval.ComputeTotals()
	if err := s.sensoryRepo.Upsert(tx, eval); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.assignmentRepo.UpdateStatus(tx, eval.SampleID, judgeID, entity.AssignmentStatusCompleted); err != nil {
		tx.Rollback()
		return nil, err
	}

	// Если все назначенные судьи завершили работу, образец закрывается.
	// Список читается в той же транзакции: строка текущего судьи уже
	// помечена завершенной, а конкурирующая запись другого судьи не
	// может потеряться под блокировкой строки образца.
	assignments, err := s.assignmentRepo.ListBySample(tx, eval.SampleID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if allAssignmentsCompleted(assignments) && sample.Status == entity.SampleStatusApproved {
		if err := s.sampleRepo.UpdateStatus(tx, sample.ID, entity.SampleStatusEvaluated); err != nil {
			tx.Rollback()
			return nil, err
		}
		sample.Status = entity.SampleStatusEvaluated
	}

	pending, err := s.rebuildAndFanout(tx, sample, eval)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.invalidateCaches(sample)
	s.notificationSvc.Publish(pending)
	return eval, nil
}

// DeleteEvaluation удаляет оценку судьи и перестраивает рейтинг в той же
// транзакции. Назначение возвращается в работу. Удаление, как и запись,
// допускается только для одобренных и закрытых образцов.
func (s *SensoryService) DeleteEvaluation(judgeID, sampleID uint) error {
	sample, err := s.sampleRepo.GetByID(sampleID)
	if err != nil {
		return err
	}
	if sample.Status != entity.SampleStatusApproved && sample.Status != entity.SampleStatusEvaluated {
		return fmt.Errorf("%w: sensory evaluation cannot be revised in status %s",
			apperrors.ErrInvalidTransition, sample.Status)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during sensory DeleteEvaluation transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := s.sensoryRepo.Delete(tx, sampleID, judgeID); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.assignmentRepo.UpdateStatus(tx, sampleID, judgeID, entity.AssignmentStatusEvaluating); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.topResultRepo.Rebuild(tx, sample.ContestID, s.topN); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateCaches(sample)
	return nil
}

// allAssignmentsCompleted сообщает, завершили ли работу все назначенные судьи
func allAssignmentsCompleted(assignments []entity.JudgeAssignment) bool {
	for _, a := range assignments {
		if a.Status != entity.AssignmentStatusCompleted {
			return false
		}
	}
	return len(assignments) > 0
}

// GetBySampleAndJudge возвращает оценку пары (sample, judge)
func (s *SensoryService) GetBySampleAndJudge(sampleID, judgeID uint) (*entity.SensoryEvaluation, error) {
	return s.sensoryRepo.GetBySampleAndJudge(sampleID, judgeID)
}

// ListBySample возвращает все сенсорные оценки образца
func (s *SensoryService) ListBySample(sampleID uint) ([]entity.SensoryEvaluation, error) {
	return s.sensoryRepo.ListBySample(sampleID)
}

// rebuildAndFanout перестраивает рейтинг конкурса и собирает уведомления
// внутри переданной транзакции: владельцу образца — о сохраненной оценке,
// владельцам призовых образцов — о попадании в тройку. Тройка до и после
// перестройки сравнивается, чтобы не рассылать одно и то же уведомление
// на каждую новую оценку в конкурсе.
func (s *SensoryService) rebuildAndFanout(tx *gorm.DB, sample *entity.Sample, eval *entity.SensoryEvaluation) ([]entity.Notification, error) {
	prev, err := s.topResultRepo.GetTopSamples(tx, sample.ContestID, topNotifyLimit)
	if err != nil {
		return nil, err
	}
	prevRanks := make(map[uint]int, len(prev))
	for _, row := range prev {
		prevRanks[row.SampleID] = row.Rank
	}

	if err := s.topResultRepo.Rebuild(tx, sample.ContestID, s.topN); err != nil {
		return nil, err
	}

	pending, err := s.notificationSvc.NotifyUser(tx, entity.Notification{
		UserID:   sample.UserID,
		Type:     entity.NotificationSensorySaved,
		Priority: entity.PriorityNormal,
		Title:    "Сенсорная оценка сохранена",
		Message:  fmt.Sprintf("Образец «%s» получил сенсорную оценку.", sample.Name),
		Detail: detailJSON(map[string]interface{}{
			"overall_quality": eval.OverallQuality,
			"verdict":         eval.Verdict,
		}),
		SampleID:  &sample.ID,
		ContestID: &sample.ContestID,
	})
	if err != nil {
		return nil, err
	}

	top, err := s.topResultRepo.GetTopSamples(tx, sample.ContestID, topNotifyLimit)
	if err != nil {
		return nil, err
	}
	for _, row := range top {
		if rank, ok := prevRanks[row.SampleID]; ok && rank == row.Rank {
			continue
		}
		topSample, err := s.sampleRepo.GetByID(row.SampleID)
		if err != nil {
			return nil, err
		}
		batch, err := s.notificationSvc.NotifyUser(tx, entity.Notification{
			UserID:   topSample.UserID,
			Type:     entity.NotificationTopThree,
			Priority: entity.PriorityHigh,
			Title:    "Образец в тройке лидеров",
			Message: fmt.Sprintf("Образец «%s» занимает %d место со средней оценкой %.2f.",
				topSample.Name, row.Rank, row.AverageScore),
			Detail: detailJSON(map[string]interface{}{
				"rank":          row.Rank,
				"average_score": row.AverageScore,
			}),
			SampleID:  &topSample.ID,
			ContestID: &sample.ContestID,
		})
		if err != nil {
			return nil, err
		}
		pending = append(pending, batch...)
	}
	return pending, nil
}

func (s *SensoryService) invalidateCaches(sample *entity.Sample) {
	if err := s.cacheRepo.Delete(redisrepo.RankingKey(sample.ContestID)); err != nil {
		log.Printf("[SensoryService] Ошибка инвалидации кеша рейтинга конкурса #%d: %v", sample.ContestID, err)
	}
	if code := sample.TrackingCodeValue(); code != "" {
		if err := s.cacheRepo.Delete(redisrepo.TrackingStatusKey(code)); err != nil {
			log.Printf("[SensoryService] Ошибка инвалидации кеша отслеживания %s: %v", code, err)
		}
	}
}
