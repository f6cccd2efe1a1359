package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/maitri-app/maitri-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateByDeviceIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	first, err := svc.FindOrCreateByDevice("device-1")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.ID)

	second, err := svc.FindOrCreateByDevice("device-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateByDeviceRequiresDeviceID(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.FindOrCreateByDevice("")
	assert.ErrorIs(t, err, ErrDeviceIDRequired)

	_, err = svc.FindOrCreateByDevice("   ")
	assert.ErrorIs(t, err, ErrDeviceIDRequired)
}

func TestFindOrCreateByDeviceExistingRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	// Simulates the losing side of a first-contact race: the row already
	// exists when this resolver goes looking.
	existing := models.User{ID: uuid.New(), DeviceID: "device-raced"}
	require.NoError(t, db.Create(&existing).Error)

	user, err := svc.FindOrCreateByDevice("device-raced")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}

func TestFindByDeviceUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.FindByDevice("never-seen")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByDeviceDoesNotCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.FindByDevice("never-seen")
	require.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
