package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/errorx"
	"github.com/wize-house/api-go/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Activity{}, &models.RefreshToken{}))
	return NewGormStore(db)
}

func seedUser(t *testing.T, s *GormStore, nickname, upline string) *models.User {
	t.Helper()
	user := &models.User{Nickname: nickname, FullName: nickname + " full", Upline: upline}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUser(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func TestGetUserLoadsHistoryNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "mint", "")

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		act := &models.Activity{
			UserID:    user.ID,
			Type:      models.ActivityCheckin,
			DateKey:   day,
			CreatedAt: base.AddDate(0, 0, i),
		}
		require.NoError(t, s.SaveActivity(ctx, act))
	}

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.History, 3)
	assert.Equal(t, "2024-01-03", got.History[0].DateKey)
	assert.Equal(t, "2024-01-01", got.History[2].DateKey)
}

func TestGetUserByNickname(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "mint", "")

	got, err := s.GetUserByNickname(context.Background(), "mint")
	require.NoError(t, err)
	assert.Equal(t, "mint", got.Nickname)

	_, err = s.GetUserByNickname(context.Background(), "ghost")
	assert.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func TestUpdateAggregate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "mint", "")

	require.NoError(t, s.UpdateAggregate(ctx, user.ID, 5, 3))

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Points)
	assert.Equal(t, 3, got.Streak)
}

func TestUpdateAggregateUnknownUser(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateAggregate(context.Background(), 404, 1, 1)
	assert.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func TestFindByUpline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "coach", "")
	a := seedUser(t, s, "a", "coach")
	b := seedUser(t, s, "b", "coach")
	seedUser(t, s, "c", "someone-else")

	require.NoError(t, s.UpdateAggregate(ctx, b.ID, 10, 2))
	require.NoError(t, s.UpdateAggregate(ctx, a.ID, 4, 1))

	downlines, err := s.FindByUpline(ctx, "coach")
	require.NoError(t, err)
	require.Len(t, downlines, 2)
	assert.Equal(t, "b", downlines[0].Nickname, "sorted by points")
}

func TestFindByUplineMayReferenceUnknownNickname(t *testing.T) {
	s := newTestStore(t)
	// Upline is a bare name reference; nobody named "future" has to exist.
	seedUser(t, s, "early-bird", "future")

	downlines, err := s.FindByUpline(context.Background(), "future")
	require.NoError(t, err)
	assert.Len(t, downlines, 1)
}

func TestSearchUsers(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "minty", "")
	seedUser(t, s, "mentor", "")

	found, err := s.SearchUsers(context.Background(), "mint", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "minty", found[0].Nickname)
}

func TestResetHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "mint", "")
	require.NoError(t, s.SaveActivity(ctx, &models.Activity{UserID: user.ID, Type: models.ActivityBook, DateKey: "2024-01-01"}))
	require.NoError(t, s.UpdateAggregate(ctx, user.ID, 1, 1))

	require.NoError(t, s.ResetHistory(ctx, user.ID))

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Points)
	assert.Equal(t, 0, got.Streak)
	assert.Empty(t, got.History)
}
