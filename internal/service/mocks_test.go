package service

import (
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев для тестирования сервисов
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetIDsByRole(role string) ([]uint, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockContestRepository реализует repository.ContestRepository
type MockContestRepository struct {
	mock.Mock
}

func (m *MockContestRepository) Create(tx *gorm.DB, contest *entity.Contest) error {
	args := m.Called(tx, contest)
	return args.Error(0)
}

func (m *MockContestRepository) GetByID(id uint) (*entity.Contest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contest), args.Error(1)
}

func (m *MockContestRepository) List(limit, offset int) ([]entity.Contest, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Contest), args.Get(1).(int64), args.Error(2)
}

func (m *MockContestRepository) SetFinalStage(tx *gorm.DB, id uint, enabled bool) error {
	args := m.Called(tx, id, enabled)
	return args.Error(0)
}

func (m *MockContestRepository) FindActiveByOwner(tx *gorm.DB, ownerID uint, date time.Time) (*entity.Contest, error) {
	args := m.Called(tx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contest), args.Error(1)
}

// MockSampleRepository реализует repository.SampleRepository
type MockSampleRepository struct {
	mock.Mock
}

func (m *MockSampleRepository) Create(tx *gorm.DB, sample *entity.Sample) error {
	args := m.Called(tx, sample)
	return args.Error(0)
}

func (m *MockSampleRepository) GetByID(id uint) (*entity.Sample, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Sample), args.Error(1)
}

func (m *MockSampleRepository) GetByIDForUpdate(tx *gorm.DB, id uint) (*entity.Sample, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Sample), args.Error(1)
}

func (m *MockSampleRepository) GetByTrackingCode(code string) (*entity.Sample, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Sample), args.Error(1)
}

func (m *MockSampleRepository) Update(tx *gorm.DB, sample *entity.Sample) error {
	args := m.Called(tx, sample)
	return args.Error(0)
}

func (m *MockSampleRepository) UpdateStatus(tx *gorm.DB, id uint, status string) error {
	args := m.Called(tx, id, status)
	return args.Error(0)
}

func (m *MockSampleRepository) ListByContest(contestID uint, limit, offset int) ([]entity.Sample, int64, error) {
	args := m.Called(contestID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Sample), args.Get(1).(int64), args.Error(2)
}

func (m *MockSampleRepository) ListByOwner(ownerID uint, limit, offset int) ([]entity.Sample, int64, error) {
	args := m.Called(ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Sample), args.Get(1).(int64), args.Error(2)
}

// MockAssignmentRepository реализует repository.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) BulkCreate(tx *gorm.DB, assignments []entity.JudgeAssignment) (int64, error) {
	args := m.Called(tx, assignments)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) Get(sampleID, judgeID uint) (*entity.JudgeAssignment, error) {
	args := m.Called(sampleID, judgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.JudgeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListBySample(tx *gorm.DB, sampleID uint) ([]entity.JudgeAssignment, error) {
	args := m.Called(tx, sampleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.JudgeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByJudge(judgeID uint) ([]entity.JudgeAssignment, error) {
	args := m.Called(judgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.JudgeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) UpdateStatus(tx *gorm.DB, sampleID, judgeID uint, status string) error {
	args := m.Called(tx, sampleID, judgeID, status)
	return args.Error(0)
}

// MockNotificationRepository реализует repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateBatch(tx *gorm.DB, notifications []entity.Notification) error {
	args := m.Called(tx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(userID uint, onlyUnread bool, limit, offset int) ([]entity.Notification, int64, error) {
	args := m.Called(userID, onlyUnread, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// MockTopResultRepository реализует repository.TopResultRepository
type MockTopResultRepository struct {
	mock.Mock
}

func (m *MockTopResultRepository) Rebuild(tx *gorm.DB, contestID uint, topN int) error {
	args := m.Called(tx, contestID, topN)
	return args.Error(0)
}

func (m *MockTopResultRepository) GetByContest(contestID uint) ([]entity.TopResult, error) {
	args := m.Called(contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TopResult), args.Error(1)
}

func (m *MockTopResultRepository) GetTopSamples(tx *gorm.DB, contestID uint, limit int) ([]entity.TopResult, error) {
	args := m.Called(tx, contestID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TopResult), args.Error(1)
}

// MockSensoryEvaluationRepository — мок repository.SensoryEvaluationRepository
type MockSensoryEvaluationRepository struct {
	mock.Mock
}

func (m *MockSensoryEvaluationRepository) Upsert(tx *gorm.DB, eval *entity.SensoryEvaluation) error {
	args := m.Called(tx, eval)
	return args.Error(0)
}

func (m *MockSensoryEvaluationRepository) GetBySampleAndJudge(sampleID, judgeID uint) (*entity.SensoryEvaluation, error) {
	args := m.Called(sampleID, judgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SensoryEvaluation), args.Error(1)
}

func (m *MockSensoryEvaluationRepository) ListBySample(sampleID uint) ([]entity.SensoryEvaluation, error) {
	args := m.Called(sampleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SensoryEvaluation), args.Error(1)
}

func (m *MockSensoryEvaluationRepository) Delete(tx *gorm.DB, sampleID, judgeID uint) error {
	args := m.Called(tx, sampleID, judgeID)
	return args.Error(0)
}
