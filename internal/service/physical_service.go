package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	redisrepo "github.com/yourusername/contest-api/internal/repository/redis"
)

// PhysicalService реализует физическую оценку образца
type PhysicalService struct {
	physicalRepo    repository.PhysicalEvaluationRepository
	sampleRepo      repository.SampleRepository
	notificationSvc *NotificationService
	cacheRepo       repository.CacheRepository
	db              *gorm.DB
	thresholds      config.PhysicalThresholds
}

// NewPhysicalService создает новый сервис физической оценки
func NewPhysicalService(
	physicalRepo repository.PhysicalEvaluationRepository,
	sampleRepo repository.SampleRepository,
	notificationSvc *NotificationService,
	cacheRepo repository.CacheRepository,
	db *gorm.DB,
	thresholds config.PhysicalThresholds,
) *PhysicalService {
	return &PhysicalService{
		physicalRepo:    physicalRepo,
		sampleRepo:      sampleRepo,
		notificationSvc: notificationSvc,
		cacheRepo:       cacheRepo,
		db:              db,
		thresholds:      thresholds,
	}
}

// ApplyPhysicalRules прогоняет измерения через пороговые правила.
// Правила не останавливаются на первом нарушении: вердикт сопровождается
// ПОЛНЫМ списком причин, а замечания (warnings) вердикт не меняют.
func ApplyPhysicalRules(e *entity.PhysicalEvaluation, t config.PhysicalThresholds) (verdict string, reasons, warnings []string) {
	reasons = []string{}
	warnings = []string{}

	if e.AromaMoldy {
		reasons = append(reasons, "посторонний запах: плесень")
	}
	if e.AromaSmoky {
		reasons = append(reasons, "посторонний запах: дым")
	}
	if e.AromaChemical {
		reasons = append(reasons, "посторонний запах: химия")
	}
	if e.HumidityPct < t.HumidityMin || e.HumidityPct > t.HumidityMax {
		reasons = append(reasons, fmt.Sprintf("влажность %.1f%% вне допустимого интервала %.1f–%.1f%%",
			e.HumidityPct, t.HumidityMin, t.HumidityMax))
	}
	if e.BrokenGrainsPct > t.BrokenGrainsMax {
		reasons = append(reasons, fmt.Sprintf("доля ломаных зерен %.1f%% превышает %.1f%%",
			e.BrokenGrainsPct, t.BrokenGrainsMax))
	}
	if e.ViolatedGrains {
		reasons = append(reasons, "обнаружены поврежденные зерна")
	}
	if e.AffectedGrains > t.AffectedGrainsMax {
		reasons = append(reasons, fmt.Sprintf("зерна, пораженные насекомыми: %d (допустимо %d)",
			e.AffectedGrains, t.AffectedGrainsMax))
	}
	if e.WellFermentedPct+e.LightFermentedPct < t.FermentedMin {
		reasons = append(reasons, fmt.Sprintf("суммарная ферментация %.1f%% ниже минимума %.1f%%",
			e.WellFermentedPct+e.LightFermentedPct, t.FermentedMin))
	}
	if e.PurplePct > t.PurpleMax {
		reasons = append(reasons, fmt.Sprintf("доля фиолетовых зерен %.1f%% превышает %.1f%%",
			e.PurplePct, t.PurpleMax))
	}
	if e.SlatyPct > t.SlatyMax {
		reasons = append(reasons, fmt.Sprintf("доля сланцевых зерен %.1f%% превышает %.1f%%",
			e.SlatyPct, t.SlatyMax))
	}
	if e.InternalMoldPct > t.InternalMoldMax {
		reasons = append(reasons, fmt.Sprintf("внутренняя плесень %.1f%% превышает %.1f%%",
			e.InternalMoldPct, t.InternalMoldMax))
	}
	if e.OverFermentedPct > t.OverFermentedMax {
		reasons = append(reasons, fmt.Sprintf("переферментация %.1f%% превышает %.1f%%",
			e.OverFermentedPct, t.OverFermentedMax))
	}

	if e.FlatGrainsPct > t.FlatGrainsWarn {
		warnings = append(warnings, fmt.Sprintf("доля плоских зерен %.1f%% выше ориентира %.1f%%",
			e.FlatGrainsPct, t.FlatGrainsWarn))
	}

	if len(reasons) > 0 {
		return entity.VerdictDisqualified, reasons, warnings
	}
	return entity.VerdictPassed, reasons, warnings
}

// SubmitEvaluation сохраняет физическую оценку и двигает образец по конвейеру.
// Образец из received сначала переходит в physical_evaluation, затем по
// вердикту правил — в approved или disqualified. Все в одной транзакции
// вместе с уведомлениями.
func (s *PhysicalService) SubmitEvaluation(judgeID uint, eval *entity.PhysicalEvaluation) (*entity.PhysicalEvaluation, error) {
	eval.JudgeID = judgeID

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during SubmitEvaluation transaction: %v", r)
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

	if sample.Status == entity.SampleStatusReceived {
		if err := s.sampleRepo.UpdateStatus(tx, sample.ID, entity.SampleStatusPhysicalEvaluation); err != nil {
			tx.Rollback()
			return nil, err
		}
		sample.Status = entity.SampleStatusPhysicalEvaluation
	}
	if sample.Status != entity.SampleStatusPhysicalEvaluation {
		tx.Rollback()
		return nil, fmt.Errorf("%w: physical evaluation is not allowed in status %s",
			apperrors.ErrInvalidTransition, sample.Status)
	}

	verdict, reasons, warnings := ApplyPhysicalRules(eval, s.thresholds)
	eval.Verdict = verdict
	eval.Reasons = detailJSON(reasons)
	eval.Warnings = detailJSON(warnings)

	if err := s.physicalRepo.Upsert(tx, eval); err != nil {
		tx.Rollback()
		return nil, err
	}

	target := entity.SampleStatusApproved
	if verdict == entity.VerdictDisqualified {
		target = entity.SampleStatusDisqualified
	}
	if err := s.sampleRepo.UpdateStatus(tx, sample.ID, target); err != nil {
		tx.Rollback()
		return nil, err
	}
	sample.Status = target

	priority := entity.PriorityNormal
	message := fmt.Sprintf("Образец «%s» прошел физическую оценку.", sample.Name)
	if verdict == entity.VerdictDisqualified {
		priority = entity.PriorityHigh
		message = fmt.Sprintf("Образец «%s» дисквалифицирован по результатам физической оценки.", sample.Name)
	}
	pending, err := s.notificationSvc.NotifyUser(tx, entity.Notification{
		UserID:   sample.UserID,
		Type:     entity.NotificationPhysicalResult,
		Priority: priority,
		Title:    "Результат физической оценки",
		Message:  message,
		Detail: detailJSON(map[string]interface{}{
			"verdict":  verdict,
			"reasons":  reasons,
			"warnings": warnings,
		}),
		SampleID:  &sample.ID,
		ContestID: &sample.ContestID,
	})
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if code := sample.TrackingCodeValue(); code != "" {
		if err := s.cacheRepo.Delete(redisrepo.TrackingStatusKey(code)); err != nil {
			log.Printf("[PhysicalService] Ошибка инвалидации кеша %s: %v", code, err)
		}
	}
	s.notificationSvc.Publish(pending)
	return eval, nil
}

// GetBySample возвращает физическую оценку образца
func (s *PhysicalService) GetBySample(sampleID uint) (*entity.PhysicalEvaluation, error) {
	return s.physicalRepo.GetBySampleID(sampleID)
}
