package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/maitri-app/maitri-backend/internal/dto"
	"github.com/maitri-app/maitri-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngagementFixture(t *testing.T) (*EngagementService, *ReportService, *models.Report) {
	t.Helper()
	db := newTestDB(t)
	users := NewUserService(db)
	reports := NewReportService(db, users)
	engagement := NewEngagementService(db, users)

	report, err := reports.Submit(&dto.CreateReportRequest{
		DeviceID: "owner", ImageURL: "http://x/a.jpg",
	})
	require.NoError(t, err)
	return engagement, reports, report
}

func TestToggleLikeUnknownDevice(t *testing.T) {
	engagement, _, report := newEngagementFixture(t)

	// Liking never creates a user implicitly, unlike report submission.
	_, _, err := engagement.ToggleLike("stranger", report.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleLikeUnknownReport(t *testing.T) {
	engagement, _, _ := newEngagementFixture(t)

	_, _, err := engagement.ToggleLike("owner", uuid.New())
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestToggleLikeSymmetry(t *testing.T) {
	engagement, _, report := newEngagementFixture(t)
	db := engagement.db

	// Odd toggles end liked with a persisted row, even toggles end clean.
	for i := 1; i <= 4; i++ {
		liked, count, err := engagement.ToggleLike("owner", report.ID)
		require.NoError(t, err)

		wantLiked := i%2 == 1
		assert.Equal(t, wantLiked, liked, "toggle %d", i)

		var rows int64
		require.NoError(t, db.Model(&models.Like{}).
			Where("report_id = ?", report.ID).Count(&rows).Error)
		if wantLiked {
			assert.Equal(t, int64(1), rows)
			assert.Equal(t, int64(1), count)
		} else {
			assert.Equal(t, int64(0), rows)
			assert.Equal(t, int64(0), count)
		}
	}
}

func TestToggleLikeCountsAllUsers(t *testing.T) {
	engagement, reports, report := newEngagementFixture(t)

	_, err := reports.Submit(&dto.CreateReportRequest{DeviceID: "other", ImageURL: "http://x/b.jpg"})
	require.NoError(t, err)

	_, _, err = engagement.ToggleLike("other", report.ID)
	require.NoError(t, err)
	liked, count, err := engagement.ToggleLike("owner", report.ID)
	require.NoError(t, err)

	assert.True(t, liked)
	assert.Equal(t, int64(2), count)
}

func TestLikeState(t *testing.T) {
	engagement, _, report := newEngagementFixture(t)

	liked, count, err := engagement.LikeState("owner", report.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	_, _, err = engagement.ToggleLike("owner", report.ID)
	require.NoError(t, err)

	liked, count, err = engagement.LikeState("owner", report.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	_, _, err = engagement.LikeState("stranger", report.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddComment(t *testing.T) {
	engagement, _, report := newEngagementFixture(t)

	comment, err := engagement.AddComment("owner", report.ID, "Poor thing, on my way")
	require.NoError(t, err)
	assert.Equal(t, "Poor thing, on my way", comment.Text)
	assert.Equal(t, "owner", comment.User.DeviceID)
	assert.Equal(t, report.ID, comment.ReportID)
}

func TestAddCommentValidation(t *testing.T) {
	engagement, _, report := newEngagementFixture(t)

	_, err := engagement.AddComment("owner", report.ID, "   ")
	assert.ErrorIs(t, err, ErrTextRequired)

	_, err = engagement.AddComment("stranger", report.ID, "hi")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = engagement.AddComment("owner", uuid.New(), "hi")
	assert.ErrorIs(t, err, ErrReportNotFound)
}
