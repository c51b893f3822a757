package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// FinalService реализует оценку финального этапа по взвешенной рубрике
type FinalService struct {
	finalRepo       repository.FinalEvaluationRepository
	sampleRepo      repository.SampleRepository
	contestRepo     repository.ContestRepository
	notificationSvc *NotificationService
	db              *gorm.DB
	weights         map[string]entity.FinalWeights
}

// NewFinalService создает новый сервис финальной оценки
func NewFinalService(
	finalRepo repository.FinalEvaluationRepository,
	sampleRepo repository.SampleRepository,
	contestRepo repository.ContestRepository,
	notificationSvc *NotificationService,
	db *gorm.DB,
	cfg *config.Config,
) *FinalService {
	return &FinalService{
		finalRepo:       finalRepo,
		sampleRepo:      sampleRepo,
		contestRepo:     contestRepo,
		notificationSvc: notificationSvc,
		db:              db,
		weights:         cfg.Evaluation.FinalWeights,
	}
}

// SubmitEvaluation сохраняет (или перезаписывает) финальную оценку.
// Финальный этап должен быть открыт на конкурсе; веса рубрики берутся
// по виду продукции образца, итог вычисляется сервером.
func (s *FinalService) SubmitEvaluation(evaluatorID uint, eval *entity.FinalEvaluation) (*entity.FinalEvaluation, error) {
	eval.EvaluatorID = evaluatorID
	if err := eval.ValidateScores(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	sample, err := s.sampleRepo.GetByID(eval.SampleID)
	if err != nil {
		return nil, err
	}
	contest, err := s.contestRepo.GetByID(sample.ContestID)
	if err != nil {
		return nil, err
	}
	if !contest.FinalStage {
		return nil, fmt.Errorf("%w: final stage is not open for contest %d",
			apperrors.ErrValidation, contest.ID)
	}

	weights, ok := s.weights[sample.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: no final weights configured for kind %s",
			apperrors.ErrValidation, sample.Kind)
	}
	eval.ComputeWeighted(weights)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during final SubmitEvaluation transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := s.finalRepo.Upsert(tx, eval); err != nil {
		tx.Rollback()
		return nil, err
	}

	pending, err := s.notificationSvc.NotifyUser(tx, entity.Notification{
		UserID:   sample.UserID,
		Type:     entity.NotificationFinalSaved,
		Priority: entity.PriorityNormal,
		Title:    "Финальная оценка сохранена",
		Message:  fmt.Sprintf("Образец «%s» получил финальную оценку %.2f.", sample.Name, eval.WeightedScore),
		Detail: detailJSON(map[string]interface{}{
			"weighted_score": eval.WeightedScore,
		}),
		SampleID:  &sample.ID,
		ContestID: &contest.ID,
	})
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.notificationSvc.Publish(pending)
	return eval, nil
}

// ListBySample возвращает все финальные оценки образца
func (s *FinalService) ListBySample(sampleID uint) ([]entity.FinalEvaluation, error) {
	return s.finalRepo.ListBySample(sampleID)
}
