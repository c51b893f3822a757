package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ContestService реализует управление конкурсами
type ContestService struct {
	contestRepo     repository.ContestRepository
	userRepo        repository.UserRepository
	notificationSvc *NotificationService
	db              *gorm.DB
}

// NewContestService создает новый сервис конкурсов
func NewContestService(
	contestRepo repository.ContestRepository,
	userRepo repository.UserRepository,
	notificationSvc *NotificationService,
	db *gorm.DB,
) *ContestService {
	return &ContestService{
		contestRepo:     contestRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		db:              db,
	}
}

// CreateContest создает конкурс. Директор не может вести два конкурса
// одновременно: проверка эксклюзивности и вставка выполняются в одной
// транзакции, чтобы конкурирующие запросы не обошли ограничение.
// Администратор ограничению не подчиняется.
func (s *ContestService) CreateContest(userID uint, name, description string, startDate, endDate time.Time) (*entity.Contest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: contest name is required", apperrors.ErrValidation)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && !user.IsDirector() {
		return nil, apperrors.ErrForbidden
	}

	contest := &entity.Contest{
		Name:        name,
		Description: strings.TrimSpace(description),
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during CreateContest transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := s.checkExclusivity(tx, user, time.Now()); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.contestRepo.Create(tx, contest); err != nil {
		tx.Rollback()
		return nil, err
	}

	pending, err := s.notificationSvc.NotifyRole(tx, entity.RoleJudge, entity.Notification{
		Type:      entity.NotificationContestCreated,
		Priority:  entity.PriorityNormal,
		Title:     "Открыт новый конкурс",
		Message:   fmt.Sprintf("Конкурс «%s» открыт с %s по %s.", contest.Name, startDate.Format("02.01.2006"), endDate.Format("02.01.2006")),
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
	return contest, nil
}

// checkExclusivity возвращает ErrDirectorActive, если у директора уже есть
// конкурс, активный на указанную дату. Для администратора проверка пропускается.
func (s *ContestService) checkExclusivity(tx *gorm.DB, user *entity.User, now time.Time) error {
	if user.IsAdmin() {
		return nil
	}
	_, err := s.contestRepo.FindActiveByOwner(tx, user.ID, now)
	if err == nil {
		return apperrors.ErrDirectorActive
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}

// OpenFinalStage открывает финальный этап конкурса. Доступно владельцу
// конкурса и администратору; судьи уведомляются.
func (s *ContestService) OpenFinalStage(contestID, userID uint) (*entity.Contest, error) {
	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && contest.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if contest.FinalStage {
		return nil, fmt.Errorf("%w: final stage is already open", apperrors.ErrConflict)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during OpenFinalStage transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := s.contestRepo.SetFinalStage(tx, contestID, true); err != nil {
		tx.Rollback()
		return nil, err
	}
	contest.FinalStage = true

	pending, err := s.notificationSvc.NotifyRole(tx, entity.RoleJudge, entity.Notification{
		Type:      entity.NotificationFinalStage,
		Priority:  entity.PriorityHigh,
		Title:     "Открыт финальный этап",
		Message:   fmt.Sprintf("На конкурсе «%s» открыт финальный этап оценки.", contest.Name),
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
	return contest, nil
}

// GetByID возвращает конкурс по идентификатору
func (s *ContestService) GetByID(id uint) (*entity.Contest, error) {
	return s.contestRepo.GetByID(id)
}

// List возвращает конкурсы с пагинацией
func (s *ContestService) List(page, pageSize int) ([]entity.Contest, int64, error) {
	limit, offset := normalizePage(page, pageSize)
	return s.contestRepo.List(limit, offset)
}
