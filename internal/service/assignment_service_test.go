package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

func TestAssignmentService_AssignJudges_EmptyLists(t *testing.T) {
	svc := NewAssignmentService(nil, nil, nil, nil, nil)

	created, err := svc.AssignJudges(nil, []uint{1})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Zero(t, created)
}

func TestAssignmentService_AssignJudges_SampleNotApproved(t *testing.T) {
	// Arrange
	mockSampleRepo := new(MockSampleRepository)
	mockSampleRepo.On("GetByID", uint(1)).Return(&entity.Sample{
		ID:     1,
		Status: entity.SampleStatusSubmitted,
	}, nil)

	svc := NewAssignmentService(nil, mockSampleRepo, nil, nil, nil)

	// Act
	created, err := svc.AssignJudges([]uint{1}, []uint{7})

	// Assert: назначать можно только одобренные образцы
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Zero(t, created)
	mockSampleRepo.AssertExpectations(t)
}

func TestAssignmentService_AssignJudges_UserIsNotJudge(t *testing.T) {
	// Arrange
	mockSampleRepo := new(MockSampleRepository)
	mockSampleRepo.On("GetByID", uint(1)).Return(&entity.Sample{
		ID:     1,
		Status: entity.SampleStatusApproved,
	}, nil)

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", uint(9)).Return(&entity.User{
		ID:   9,
		Role: entity.RoleParticipant,
	}, nil)

	svc := NewAssignmentService(nil, mockSampleRepo, mockUserRepo, nil, nil)

	// Act
	created, err := svc.AssignJudges([]uint{1}, []uint{9})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Назначить можно только пользователя с ролью judge")
	assert.Zero(t, created)
	mockUserRepo.AssertExpectations(t)
}

func TestAssignmentService_StartEvaluation_AlreadyCompleted(t *testing.T) {
	// Arrange
	mockAssignmentRepo := new(MockAssignmentRepository)
	mockAssignmentRepo.On("Get", uint(1), uint(7)).Return(&entity.JudgeAssignment{
		SampleID: 1,
		JudgeID:  7,
		Status:   entity.AssignmentStatusCompleted,
	}, nil)

	svc := NewAssignmentService(mockAssignmentRepo, nil, nil, nil, nil)

	// Act
	err := svc.StartEvaluation(1, 7)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Завершенное назначение не возвращается в работу")
	mockAssignmentRepo.AssertExpectations(t)
}

func TestAssignmentService_Progress(t *testing.T) {
	// Arrange
	mockAssignmentRepo := new(MockAssignmentRepository)
	mockAssignmentRepo.On("ListBySample", mock.Anything, uint(1)).Return([]entity.JudgeAssignment{
		{SampleID: 1, JudgeID: 7, Status: entity.AssignmentStatusCompleted},
		{SampleID: 1, JudgeID: 8, Status: entity.AssignmentStatusEvaluating},
	}, nil)

	svc := NewAssignmentService(mockAssignmentRepo, nil, nil, nil, nil)

	// Act
	progress, assignments, err := svc.Progress(1)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.ProgressEvaluating, progress)
	assert.Len(t, assignments, 2)
}
