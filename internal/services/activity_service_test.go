package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_RecordPublishes(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockActivityRepository)
	pub := new(MockPublisher)
	service := services.NewActivityService(mockRepo, services.NewEvents(pub, nil, nil), 0, 0, nil)

	propertyID := int64(4)
	activity := &models.Activity{UserID: 1, Type: models.ActivityView, PropertyID: &propertyID}

	mockRepo.On("Record", ctx, activity).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Activity).ID = 11
	}).Return(nil).Once()
	pub.On("Publish", "activity.view", mock.MatchedBy(func(body []byte) bool {
		var got models.Activity
		return json.Unmarshal(body, &got) == nil && got.ID == 11 && *got.PropertyID == 4
	})).Return(nil).Once()

	require.NoError(t, service.Record(ctx, activity))
	mockRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestActivityService_RecordRejectsUnknownType(t *testing.T) {
	mockRepo := new(MockActivityRepository)
	service := services.NewActivityService(mockRepo, nil, 0, 0, nil)

	err := service.Record(context.Background(), &models.Activity{UserID: 1, Type: "teleport"})
	assert.Equal(t, apperror.ValidationError, apperror.TypeOf(err))
	mockRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestActivityService_RecordSurvivesBrokerFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockActivityRepository)
	pub := new(MockPublisher)
	service := services.NewActivityService(mockRepo, services.NewEvents(pub, nil, nil), 0, 0, nil)

	mockRepo.On("Record", ctx, mock.Anything).Return(nil).Once()
	pub.On("Publish", "activity.search", mock.Anything).Return(errors.New("connection reset")).Once()

	assert.NoError(t, service.Record(ctx, &models.Activity{UserID: 1, Type: models.ActivitySearch}))
	pub.AssertExpectations(t)
}

func TestActivityService_RecentLimits(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockActivityRepository)
	service := services.NewActivityService(mockRepo, nil, 10, 100, nil)

	mockRepo.On("Recent", ctx, int64(1), 10).Return([]models.Activity{}, nil).Twice()
	mockRepo.On("Recent", ctx, int64(1), 2).Return([]models.Activity{{ID: 3}, {ID: 2}}, nil).Once()
	mockRepo.On("Recent", ctx, int64(1), 100).Return([]models.Activity{}, nil).Once()

	_, err := service.Recent(ctx, 1, 0)
	require.NoError(t, err)
	_, err = service.Recent(ctx, 1, -5)
	require.NoError(t, err)
	got, err := service.Recent(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	_, err = service.Recent(ctx, 1, 5000)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
