package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

func newTestSensoryService(assignmentRepo *MockAssignmentRepository) *SensoryService {
	cfg := &config.Config{}
	cfg.Ranking.TopN = 50
	return NewSensoryService(nil, assignmentRepo, nil, nil, nil, nil, nil, cfg)
}

func TestSensoryService_SubmitEvaluation_ScoreOutOfRange(t *testing.T) {
	svc := newTestSensoryService(nil)

	eval := &entity.SensoryEvaluation{SampleID: 1, AcidityFruity: 11.0}

	result, err := svc.SubmitEvaluation(7, eval)

	assert.ErrorIs(t, err, apperrors.ErrValidation, "Баллы вне шкалы 0–10 отклоняются")
	assert.Nil(t, result)
}

func TestSensoryService_SubmitEvaluation_JudgeNotAssigned(t *testing.T) {
	// Arrange
	mockAssignmentRepo := new(MockAssignmentRepository)
	mockAssignmentRepo.On("Get", uint(1), uint(7)).Return(nil, apperrors.ErrNotFound)

	svc := newTestSensoryService(mockAssignmentRepo)

	// Act
	result, err := svc.SubmitEvaluation(7, &entity.SensoryEvaluation{SampleID: 1})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "Неназначенный судья не может оценивать")
	assert.Nil(t, result)
	mockAssignmentRepo.AssertExpectations(t)
}

func TestSensoryService_TopNDefault(t *testing.T) {
	cfg := &config.Config{}
	svc := NewSensoryService(nil, nil, nil, nil, nil, nil, nil, cfg)

	assert.Equal(t, 50, svc.topN, "Нулевой top_n заменяется значением по умолчанию")
}

func TestSensoryService_DeleteEvaluation_RejectedBeforeApproval(t *testing.T) {
	// Arrange: образец еще не прошел физическую оценку
	mockSampleRepo := new(MockSampleRepository)
	mockSampleRepo.On("GetByID", uint(1)).Return(&entity.Sample{
		ID:     1,
		Status: entity.SampleStatusReceived,
	}, nil)
	mockSensoryRepo := new(MockSensoryEvaluationRepository)

	cfg := &config.Config{}
	svc := NewSensoryService(mockSensoryRepo, nil, mockSampleRepo, nil, nil, nil, nil, cfg)

	// Act
	err := svc.DeleteEvaluation(7, 1)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition,
		"Оценку нельзя отозвать до одобрения образца")
	mockSensoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestSensoryService_RebuildAndFanout_UnchangedTopThreeNotRenotified(t *testing.T) {
	// Arrange: тройка лидеров до и после перестройки совпадает
	top := []entity.TopResult{
		{ContestID: 5, SampleID: 2, Rank: 1, AverageScore: 8.4},
		{ContestID: 5, SampleID: 3, Rank: 2, AverageScore: 7.9},
	}
	mockTopRepo := new(MockTopResultRepository)
	mockTopRepo.On("GetTopSamples", mock.Anything, uint(5), 3).Return(top, nil).Twice()
	mockTopRepo.On("Rebuild", mock.Anything, uint(5), 50).Return(nil)

	mockNotificationRepo := new(MockNotificationRepository)
	mockNotificationRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	mockSampleRepo := new(MockSampleRepository)

	cfg := &config.Config{}
	cfg.Ranking.TopN = 50
	notificationSvc := NewNotificationService(mockNotificationRepo, nil, nil, nil)
	svc := NewSensoryService(nil, nil, mockSampleRepo, mockTopRepo, notificationSvc, nil, nil, cfg)

	sample := &entity.Sample{ID: 9, ContestID: 5, UserID: 4, Name: "Finca La Esperanza"}
	eval := &entity.SensoryEvaluation{SampleID: 9, OverallQuality: 8.0}

	// Act
	pending, err := svc.rebuildAndFanout(nil, sample, eval)

	// Assert: владельцы тройки повторно не уведомляются
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.NotificationSensorySaved, pending[0].Type)
	mockSampleRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	mockNotificationRepo.AssertNumberOfCalls(t, "CreateBatch", 1)
}

func TestSensoryService_RebuildAndFanout_NotifiesOnRankChange(t *testing.T) {
	// Arrange: образец 4 входит в тройку, образец 2 опускается на второе
	// место, образец 3 выбывает
	prev := []entity.TopResult{
		{ContestID: 5, SampleID: 2, Rank: 1, AverageScore: 8.4},
		{ContestID: 5, SampleID: 3, Rank: 2, AverageScore: 7.9},
	}
	next := []entity.TopResult{
		{ContestID: 5, SampleID: 4, Rank: 1, AverageScore: 9.1},
		{ContestID: 5, SampleID: 2, Rank: 2, AverageScore: 8.4},
	}
	mockTopRepo := new(MockTopResultRepository)
	mockTopRepo.On("GetTopSamples", mock.Anything, uint(5), 3).Return(prev, nil).Once()
	mockTopRepo.On("GetTopSamples", mock.Anything, uint(5), 3).Return(next, nil).Once()
	mockTopRepo.On("Rebuild", mock.Anything, uint(5), 50).Return(nil)

	mockSampleRepo := new(MockSampleRepository)
	mockSampleRepo.On("GetByID", uint(4)).Return(&entity.Sample{ID: 4, ContestID: 5, UserID: 40, Name: "Nacional"}, nil)
	mockSampleRepo.On("GetByID", uint(2)).Return(&entity.Sample{ID: 2, ContestID: 5, UserID: 20, Name: "Trinitario"}, nil)

	mockNotificationRepo := new(MockNotificationRepository)
	mockNotificationRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	cfg := &config.Config{}
	cfg.Ranking.TopN = 50
	notificationSvc := NewNotificationService(mockNotificationRepo, nil, nil, nil)
	svc := NewSensoryService(nil, nil, mockSampleRepo, mockTopRepo, notificationSvc, nil, nil, cfg)

	sample := &entity.Sample{ID: 4, ContestID: 5, UserID: 40, Name: "Nacional"}
	eval := &entity.SensoryEvaluation{SampleID: 4, OverallQuality: 9.1}

	// Act
	pending, err := svc.rebuildAndFanout(nil, sample, eval)

	// Assert: уведомлены только владельцы изменившихся позиций
	require.NoError(t, err)
	require.Len(t, pending, 3)
	recipients := map[uint]bool{}
	for _, n := range pending[1:] {
		assert.Equal(t, entity.NotificationTopThree, n.Type)
		recipients[n.UserID] = true
	}
	assert.True(t, recipients[40], "владелец нового лидера уведомлен")
	assert.True(t, recipients[20], "владелец сместившегося образца уведомлен")
	mockSampleRepo.AssertNotCalled(t, "GetByID", uint(3))
}

func TestSensoryService_AllAssignmentsCompleted(t *testing.T) {
	completed := []entity.JudgeAssignment{
		{SampleID: 1, JudgeID: 7, Status: entity.AssignmentStatusCompleted},
		{SampleID: 1, JudgeID: 8, Status: entity.AssignmentStatusCompleted},
	}
	pendingWork := []entity.JudgeAssignment{
		{SampleID: 1, JudgeID: 7, Status: entity.AssignmentStatusCompleted},
		{SampleID: 1, JudgeID: 8, Status: entity.AssignmentStatusEvaluating},
	}

	assert.True(t, allAssignmentsCompleted(completed))
	assert.False(t, allAssignmentsCompleted(pendingWork),
		"работающий судья удерживает образец открытым")
	assert.False(t, allAssignmentsCompleted(nil), "без назначений образец не закрывается")
}
