package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// AssignmentService реализует назначение судей на образцы
type AssignmentService struct {
	assignmentRepo  repository.AssignmentRepository
	sampleRepo      repository.SampleRepository
	userRepo        repository.UserRepository
	notificationSvc *NotificationService
	db              *gorm.DB
}

// NewAssignmentService создает новый сервис назначений
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	sampleRepo repository.SampleRepository,
	userRepo repository.UserRepository,
	notificationSvc *NotificationService,
	db *gorm.DB,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo:  assignmentRepo,
		sampleRepo:      sampleRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		db:              db,
	}
}

// AssignJudges массово назначает судей на образцы. Назначать можно только
// одобренные образцы и только пользователей с ролью judge; уже существующие
// пары (sample, judge) молча пропускаются. Возвращает число созданных строк.
func (s *AssignmentService) AssignJudges(sampleIDs, judgeIDs []uint) (int64, error) {
	if len(sampleIDs) == 0 || len(judgeIDs) == 0 {
		return 0, fmt.Errorf("%w: sample and judge lists must not be empty", apperrors.ErrValidation)
	}

	samples := make([]*entity.Sample, 0, len(sampleIDs))
	for _, id := range sampleIDs {
		sample, err := s.sampleRepo.GetByID(id)
		if err != nil {
			return 0, err
		}
		if sample.Status != entity.SampleStatusApproved {
			return 0, fmt.Errorf("%w: sample %d is not approved (status %s)",
				apperrors.ErrValidation, id, sample.Status)
		}
		samples = append(samples, sample)
	}

	for _, id := range judgeIDs {
		user, err := s.userRepo.GetByID(id)
		if err != nil {
			return 0, err
		}
		if user.Role != entity.RoleJudge {
			return 0, fmt.Errorf("%w: user %d is not a judge", apperrors.ErrValidation, id)
		}
	}

	assignments := make([]entity.JudgeAssignment, 0, len(samples)*len(judgeIDs))
	for _, sample := range samples {
		for _, judgeID := range judgeIDs {
			assignments = append(assignments, entity.JudgeAssignment{
				SampleID: sample.ID,
				JudgeID:  judgeID,
				Status:   entity.AssignmentStatusAssigned,
			})
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during AssignJudges transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return 0, tx.Error
	}

	created, err := s.assignmentRepo.BulkCreate(tx, assignments)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	pending := make([]entity.Notification, 0, len(judgeIDs))
	for _, judgeID := range judgeIDs {
		batch, err := s.notificationSvc.NotifyUser(tx, entity.Notification{
			UserID:   judgeID,
			Type:     entity.NotificationJudgeAssigned,
			Priority: entity.PriorityNormal,
			Title:    "Новые образцы на оценку",
			Message:  fmt.Sprintf("Вам назначено образцов: %d. Откройте список назначений.", len(samples)),
			Detail:   detailJSON(map[string]interface{}{"sample_ids": sampleIDs}),
		})
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		pending = append(pending, batch...)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	s.notificationSvc.Publish(pending)
	return created, nil
}

// StartEvaluation помечает назначение как взятое в работу (assigned -> evaluating)
func (s *AssignmentService) StartEvaluation(sampleID, judgeID uint) error {
	assignment, err := s.assignmentRepo.Get(sampleID, judgeID)
	if err != nil {
		return err
	}
	if assignment.Status == entity.AssignmentStatusCompleted {
		return fmt.Errorf("%w: evaluation already completed", apperrors.ErrConflict)
	}
	return s.assignmentRepo.UpdateStatus(s.db, sampleID, judgeID, entity.AssignmentStatusEvaluating)
}

// ListByJudge возвращает назначения судьи
func (s *AssignmentService) ListByJudge(judgeID uint) ([]entity.JudgeAssignment, error) {
	return s.assignmentRepo.ListByJudge(judgeID)
}

// Progress возвращает производный агрегатный прогресс оценки образца
func (s *AssignmentService) Progress(sampleID uint) (string, []entity.JudgeAssignment, error) {
	assignments, err := s.assignmentRepo.ListBySample(nil, sampleID)
	if err != nil {
		return "", nil, err
	}
	return entity.DeriveProgress(assignments), assignments, nil
}
