package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

func TestNotificationService_NotifyRole_ClonesTemplatePerRecipient(t *testing.T) {
	// Arrange
	mockNotificationRepo := new(MockNotificationRepository)
	mockUserRepo := new(MockUserRepository)

	mockUserRepo.On("GetIDsByRole", entity.RoleJudge).Return([]uint{7, 8, 9}, nil)
	mockNotificationRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]entity.Notification")).Return(nil)

	svc := NewNotificationService(mockNotificationRepo, mockUserRepo, nil, nil)

	// Act
	batch, err := svc.NotifyRole(nil, entity.RoleJudge, entity.Notification{
		Type:     entity.NotificationContestCreated,
		Priority: entity.PriorityNormal,
		Title:    "Открыт новый конкурс",
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, batch, 3, "По одной строке на каждого получателя")
	assert.Equal(t, uint(7), batch[0].UserID)
	assert.Equal(t, uint(9), batch[2].UserID)
	for _, n := range batch {
		assert.Equal(t, entity.NotificationContestCreated, n.Type)
	}
	mockNotificationRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestNotificationService_NotifyRole_NoRecipients(t *testing.T) {
	// Arrange
	mockNotificationRepo := new(MockNotificationRepository)
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetIDsByRole", entity.RoleJudge).Return([]uint{}, nil)

	svc := NewNotificationService(mockNotificationRepo, mockUserRepo, nil, nil)

	// Act
	batch, err := svc.NotifyRole(nil, entity.RoleJudge, entity.Notification{})

	// Assert: пустая рассылка не трогает репозиторий уведомлений
	assert.NoError(t, err)
	assert.Empty(t, batch)
	mockNotificationRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestNotificationService_List_PageClamp(t *testing.T) {
	// Arrange
	mockNotificationRepo := new(MockNotificationRepository)
	mockNotificationRepo.On("ListByUser", uint(1), false, 100, 0).
		Return([]entity.Notification{}, int64(0), nil)

	svc := NewNotificationService(mockNotificationRepo, nil, nil, nil)

	// Act: запрошенный размер страницы 500 ограничивается сотней
	_, _, err := svc.List(1, false, 0, 500)

	// Assert
	assert.NoError(t, err)
	mockNotificationRepo.AssertExpectations(t)
}
