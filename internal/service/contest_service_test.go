package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

func TestContestService_CheckExclusivity_DirectorHasActiveContest(t *testing.T) {
	// Arrange
	mockContestRepo := new(MockContestRepository)
	director := &entity.User{ID: 5, Role: entity.RoleDirector}
	active := &entity.Contest{ID: 3, UserID: 5}

	mockContestRepo.On("FindActiveByOwner", mock.Anything, uint(5), mock.AnythingOfType("time.Time")).
		Return(active, nil)

	svc := NewContestService(mockContestRepo, nil, nil, nil)

	// Act
	err := svc.checkExclusivity(nil, director, time.Now())

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrDirectorActive, "Второй активный конкурс директора запрещен")
	mockContestRepo.AssertExpectations(t)
}

func TestContestService_CheckExclusivity_NoActiveContest(t *testing.T) {
	// Arrange
	mockContestRepo := new(MockContestRepository)
	director := &entity.User{ID: 5, Role: entity.RoleDirector}

	mockContestRepo.On("FindActiveByOwner", mock.Anything, uint(5), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)

	svc := NewContestService(mockContestRepo, nil, nil, nil)

	// Act
	err := svc.checkExclusivity(nil, director, time.Now())

	// Assert
	assert.NoError(t, err, "Без активного конкурса создание разрешено")
	mockContestRepo.AssertExpectations(t)
}

func TestContestService_CheckExclusivity_AdminBypasses(t *testing.T) {
	// Arrange
	mockContestRepo := new(MockContestRepository)
	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}

	svc := NewContestService(mockContestRepo, nil, nil, nil)

	// Act
	err := svc.checkExclusivity(nil, admin, time.Now())

	// Assert: администратор не проверяется вовсе
	assert.NoError(t, err)
	mockContestRepo.AssertNotCalled(t, "FindActiveByOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestContestService_CreateContest_InvalidDates(t *testing.T) {
	svc := NewContestService(nil, nil, nil, nil)

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	contest, err := svc.CreateContest(5, "Конкурс", "", start, end)

	assert.ErrorIs(t, err, apperrors.ErrValidation, "Дата окончания раньше даты начала")
	assert.Nil(t, contest)
}

func TestContestService_CreateContest_ParticipantForbidden(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	participant := &entity.User{ID: 9, Role: entity.RoleParticipant}
	mockUserRepo.On("GetByID", uint(9)).Return(participant, nil)

	svc := NewContestService(nil, mockUserRepo, nil, nil)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)

	// Act
	contest, err := svc.CreateContest(9, "Конкурс", "", start, end)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "Участник не создает конкурсы")
	assert.Nil(t, contest)
	mockUserRepo.AssertExpectations(t)
}
