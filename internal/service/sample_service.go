package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	redisrepo "github.com/yourusername/contest-api/internal/repository/redis"
)

// TTL кеша статуса по коду отслеживания
const trackingCacheTTL = 5 * time.Minute

// TrackingStatus — публичная проекция образца для анонимного отслеживания.
// Наружу не выходит ничего, кроме кода, статуса и времени обновления.
type TrackingStatus struct {
	TrackingCode string    `json:"tracking_code"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SampleService реализует жизненный цикл конкурсного образца
type SampleService struct {
	sampleRepo      repository.SampleRepository
	contestRepo     repository.ContestRepository
	assignmentRepo  repository.AssignmentRepository
	notificationSvc *NotificationService
	cacheRepo       repository.CacheRepository
	db              *gorm.DB
	config          *config.Config
}

// NewSampleService создает новый сервис образцов
func NewSampleService(
	sampleRepo repository.SampleRepository,
	contestRepo repository.ContestRepository,
	assignmentRepo repository.AssignmentRepository,
	notificationSvc *NotificationService,
	cacheRepo repository.CacheRepository,
	db *gorm.DB,
	cfg *config.Config,
) *SampleService {
	return &SampleService{
		sampleRepo:      sampleRepo,
		contestRepo:     contestRepo,
		assignmentRepo:  assignmentRepo,
		notificationSvc: notificationSvc,
		cacheRepo:       cacheRepo,
		db:              db,
		config:          cfg,
	}
}

// CreateSample создает образец-черновик участника.
// Черновик может быть заполнен частично: обязательны только конкурс и вид
// продукции, остальные поля валидируются при отправке.
func (s *SampleService) CreateSample(userID, contestID uint, kind, name string, details datatypes.JSON) (*entity.Sample, error) {
	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		return nil, err
	}

	switch kind {
	case entity.SampleKindBean, entity.SampleKindLiquor, entity.SampleKindChocolate:
	default:
		return nil, fmt.Errorf("%w: unknown sample kind %q", apperrors.ErrValidation, kind)
	}

	sample := &entity.Sample{
		ContestID: contest.ID,
		UserID:    userID,
		Kind:      kind,
		Name:      strings.TrimSpace(name),
		Status:    entity.SampleStatusDraft,
		Details:   details,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during CreateSample transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := s.sampleRepo.Create(tx, sample); err != nil {
		tx.Rollback()
		return nil, err
	}

	pending, err := s.notificationSvc.NotifyUser(tx, entity.Notification{
		UserID:    userID,
		Type:      entity.NotificationSampleCreated,
		Priority:  entity.PriorityNormal,
		Title:     "Образец создан",
		Message:   fmt.Sprintf("Черновик образца «%s» создан. Заполните данные и отправьте на конкурс.", sample.Name),
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
	return sample, nil
}

// UpdateDraft обновляет поля черновика. Любые правки после отправки запрещены.
func (s *SampleService) UpdateDraft(sampleID, userID uint, name string, details datatypes.JSON) (*entity.Sample, error) {
	sample, err := s.sampleRepo.GetByID(sampleID)
	if err != nil {
		return nil, err
	}
	if sample.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if !sample.IsDraft() {
		return nil, fmt.Errorf("%w: sample %d is not a draft", apperrors.ErrInvalidTransition, sampleID)
	}

	if name != "" {
		sample.Name = strings.TrimSpace(name)
	}
	if details != nil {
		sample.Details = details
	}
	if err := s.sampleRepo.Update(s.db, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

// Submit отправляет черновик на конкурс: генерирует код отслеживания,
// проверяет полноту данных вида продукции и переводит образец в submitted.
func (s *SampleService) Submit(sampleID, userID uint) (*entity.Sample, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during Submit transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	sample, err := s.sampleRepo.GetByIDForUpdate(tx, sampleID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if sample.UserID != userID {
		tx.Rollback()
		return nil, apperrors.ErrForbidden
	}
	if !sample.CanTransition(entity.SampleStatusSubmitted) {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, sample.Status, entity.SampleStatusSubmitted)
	}

	if sample.TrackingCode == nil {
		code := generateTrackingCode()
		sample.TrackingCode = &code
	}
	if err := sample.ValidateForSubmit(); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	sample.Status = entity.SampleStatusSubmitted
	if err := s.sampleRepo.Update(tx, sample); err != nil {
		tx.Rollback()
		return nil, err
	}

	pending, err := s.fanoutStatusChange(tx, sample, entity.SampleStatusDraft)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.invalidateTracking(sample.TrackingCodeValue())
	s.notificationSvc.Publish(pending)
	return sample, nil
}

// Receive фиксирует физическое поступление образца (submitted -> received).
// Операция доступна директору и администратору.
func (s *SampleService) Receive(sampleID uint) (*entity.Sample, error) {
	return s.transition(sampleID, entity.SampleStatusReceived)
}

// transition выполняет общий шаг конвейера: блокирует строку образца,
// проверяет легальность ребра и пишет новый статус вместе с фановтом
// в одной транзакции.
func (s *SampleService) transition(sampleID uint, target string) (*entity.Sample, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during sample transition: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	sample, err := s.sampleRepo.GetByIDForUpdate(tx, sampleID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !sample.CanTransition(target) {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, sample.Status, target)
	}

	from := sample.Status
	if err := s.sampleRepo.UpdateStatus(tx, sample.ID, target); err != nil {
		tx.Rollback()
		return nil, err
	}
	sample.Status = target

	pending, err := s.fanoutStatusChange(tx, sample, from)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.invalidateTracking(sample.TrackingCodeValue())
	s.notificationSvc.Publish(pending)
	return sample, nil
}

// fanoutStatusChange вставляет уведомление о смене статуса владельцу образца
func (s *SampleService) fanoutStatusChange(tx *gorm.DB, sample *entity.Sample, from string) ([]entity.Notification, error) {
	return s.notificationSvc.NotifyUser(tx, entity.Notification{
		UserID:   sample.UserID,
		Type:     entity.NotificationStatusChanged,
		Priority: entity.PriorityNormal,
		Title:    "Статус образца изменен",
		Message:  fmt.Sprintf("Образец «%s» перешел в статус %s.", sample.Name, sample.Status),
		Detail: detailJSON(map[string]string{
			"from": from,
			"to":   sample.Status,
		}),
		SampleID:  &sample.ID,
		ContestID: &sample.ContestID,
	})
}

// GetByID возвращает образец с производным прогрессом оценки
func (s *SampleService) GetByID(sampleID uint) (*entity.Sample, string, error) {
	sample, err := s.sampleRepo.GetByID(sampleID)
	if err != nil {
		return nil, "", err
	}
	assignments, err := s.assignmentRepo.ListBySample(nil, sampleID)
	if err != nil {
		return nil, "", err
	}
	return sample, entity.DeriveProgress(assignments), nil
}

// TrackByCode возвращает публичный статус образца по коду отслеживания.
// Эндпоинт анонимный и горячий, поэтому ответ кешируется в Redis.
func (s *SampleService) TrackByCode(code string) (*TrackingStatus, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: tracking code is required", apperrors.ErrValidation)
	}

	var cached TrackingStatus
	if err := s.cacheRepo.GetJSON(redisrepo.TrackingStatusKey(code), &cached); err == nil {
		return &cached, nil
	}

	sample, err := s.sampleRepo.GetByTrackingCode(code)
	if err != nil {
		return nil, err
	}

	status := &TrackingStatus{
		TrackingCode: sample.TrackingCodeValue(),
		Status:       sample.Status,
		UpdatedAt:    sample.UpdatedAt,
	}
	if err := s.cacheRepo.SetJSON(redisrepo.TrackingStatusKey(code), status, trackingCacheTTL); err != nil {
		log.Printf("[SampleService] Ошибка кеширования статуса %s: %v", code, err)
	}
	return status, nil
}

// ListByContest возвращает образцы конкурса с пагинацией
func (s *SampleService) ListByContest(contestID uint, page, pageSize int) ([]entity.Sample, int64, error) {
	limit, offset := normalizePage(page, pageSize)
	return s.sampleRepo.ListByContest(contestID, limit, offset)
}

// ListByOwner возвращает образцы участника с пагинацией
func (s *SampleService) ListByOwner(ownerID uint, page, pageSize int) ([]entity.Sample, int64, error) {
	limit, offset := normalizePage(page, pageSize)
	return s.sampleRepo.ListByOwner(ownerID, limit, offset)
}

func (s *SampleService) invalidateTracking(code string) {
	if code == "" {
		return
	}
	if err := s.cacheRepo.Delete(redisrepo.TrackingStatusKey(code)); err != nil {
		log.Printf("[SampleService] Ошибка инвалидации кеша %s: %v", code, err)
	}
}

// generateTrackingCode выдает человекочитаемый уникальный код вида CC-XXXXXXXX.
// Уникальность страхует ограничение на колонке tracking_code.
func generateTrackingCode() string {
	id := uuid.New().String()
	return "CC-" + strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:12]
}

func normalizePage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}
