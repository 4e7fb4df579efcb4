package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wize-house/api-go/clock"
	"github.com/wize-house/api-go/errorx"
	"github.com/wize-house/api-go/models"
	"github.com/wize-house/api-go/storage"
	"github.com/wize-house/api-go/types"
)

// --- fakes ---

type fakeStore struct {
	mu   sync.Mutex
	user *models.User

	getErr       error
	saveErr      error
	aggregateErr error

	savedActivities []models.Activity
	savedAggregates [][2]int
	calls           []string
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error { return nil }

func (f *fakeStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	// Copy so the service cannot mutate the fake's state in place.
	u := *f.user
	u.History = append([]models.Activity(nil), f.user.History...)
	return &u, nil
}

func (f *fakeStore) GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return f.user, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) { return nil, nil }

func (f *fakeStore) SearchUsers(ctx context.Context, q string, limit int) ([]models.User, error) {
	return nil, nil
}

func (f *fakeStore) FindByUpline(ctx context.Context, nickname string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "findByUpline:"+nickname)
	switch nickname {
	case "coach":
		return []models.User{{Nickname: "a"}, {Nickname: "b"}}, nil
	case "a":
		return []models.User{{Nickname: "a1"}}, nil
	}
	return nil, nil
}

func (f *fakeStore) SaveActivity(ctx context.Context, activity *models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "save")
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedActivities = append(f.savedActivities, *activity)
	f.user.History = append([]models.Activity{*activity}, f.user.History...)
	return nil
}

func (f *fakeStore) UpdateAggregate(ctx context.Context, userID uint, points, streak int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "aggregate")
	if f.aggregateErr != nil {
		return f.aggregateErr
	}
	f.savedAggregates = append(f.savedAggregates, [2]int{points, streak})
	f.user.Points, f.user.Streak = points, streak
	return nil
}

func (f *fakeStore) ResetHistory(ctx context.Context, userID uint) error { return nil }

type fakeEvidence struct {
	uploadErr error
	uploaded  [][]byte
}

func (f *fakeEvidence) Upload(ctx context.Context, userID uint, data []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, data)
	return "https://cdn.example/evidence/x.jpg", nil
}

func (f *fakeEvidence) PresignPut(ctx context.Context, userID uint, fileName, contentType string) (*storage.PresignedUpload, error) {
	return &storage.PresignedUpload{}, nil
}

func (f *fakeEvidence) Exists(ctx context.Context, key string) (bool, error) { return true, nil }

func (f *fakeEvidence) PublicURL(key string) string { return "https://cdn.example/" + key }

// --- helpers ---

// Pinned to 10:00 Bangkok on 2024-01-10.
func testClock() *clock.Clock {
	return clock.NewAt(func() time.Time {
		return time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	})
}

func newService(st *fakeStore, ev *fakeEvidence) *ActivityService {
	return NewActivityService(st, ev, testClock(), 5*time.Second)
}

func member(points, streak int, history ...models.Activity) *models.User {
	return &models.User{ID: 1, Nickname: "mint", Points: points, Streak: streak, History: history}
}

func bookInput() types.ActivityInput {
	return types.ActivityInput{Type: models.ActivityBook, BookTitle: "Deep Work", Summary: "focus"}
}

// --- tests ---

func TestRecordActivityFirstOfDay(t *testing.T) {
	st := &fakeStore{user: member(3, 1, models.Activity{Type: models.ActivityCheckin, DateKey: "2024-01-09"})}
	svc := newService(st, &fakeEvidence{})

	res, err := svc.RecordActivity(context.Background(), 1, bookInput())
	require.NoError(t, err)
	assert.Equal(t, 1, res.PointsAwarded)
	assert.Equal(t, 4, res.Points)
	assert.Equal(t, 2, res.Streak, "yesterday was active, streak grows")
	assert.Equal(t, "2024-01-10", res.Activity.DateKey, "dateKey defaults to today")

	require.Len(t, st.savedActivities, 1)
	require.Len(t, st.savedAggregates, 1)
	assert.Equal(t, [2]int{4, 2}, st.savedAggregates[0])
}

func TestRecordActivitySaveBeforeAggregate(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	svc := newService(st, &fakeEvidence{})

	_, err := svc.RecordActivity(context.Background(), 1, bookInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"get", "save", "aggregate"}, st.calls)
}

func TestRecordActivityValidationRejectedBeforeStore(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	svc := newService(st, &fakeEvidence{})

	_, err := svc.RecordActivity(context.Background(), 1, types.ActivityInput{Type: models.ActivityBook})
	require.Error(t, err)
	assert.Equal(t, errorx.BadRequest, errorx.CodeOf(err))
	assert.Empty(t, st.calls, "invalid payloads never touch the store")
}

func TestRecordActivityUnknownUser(t *testing.T) {
	st := &fakeStore{user: member(0, 0), getErr: errorx.New(errorx.NotFound, "user 1 not found")}
	svc := newService(st, &fakeEvidence{})

	_, err := svc.RecordActivity(context.Background(), 1, bookInput())
	assert.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func TestRecordActivitySaveFailureSkipsAggregate(t *testing.T) {
	st := &fakeStore{user: member(2, 2), saveErr: errorx.New(errorx.StoreFailure, "db down")}
	svc := newService(st, &fakeEvidence{})

	_, err := svc.RecordActivity(context.Background(), 1, bookInput())
	require.Error(t, err)
	assert.NotContains(t, st.calls, "aggregate", "no aggregate drift without a backing record")
	assert.Empty(t, st.savedAggregates)
}

func TestRecordActivityAggregateFailureSurfaces(t *testing.T) {
	st := &fakeStore{user: member(0, 0), aggregateErr: errors.New("connection reset")}
	svc := newService(st, &fakeEvidence{})

	_, err := svc.RecordActivity(context.Background(), 1, bookInput())
	require.Error(t, err)
	assert.Equal(t, errorx.StoreFailure, errorx.CodeOf(err))
	assert.Len(t, st.savedActivities, 1, "the ledger record stays; reconciliation recovers the aggregate")
}

func TestRecordActivityUploadsInlineEvidence(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	ev := &fakeEvidence{}
	svc := newService(st, ev)

	input := types.ActivityInput{
		Type:         models.ActivitySale,
		EvidenceData: "data:image/png;base64,aGVsbG8=",
	}
	res, err := svc.RecordActivity(context.Background(), 1, input)
	require.NoError(t, err)
	require.Len(t, ev.uploaded, 1)
	assert.Equal(t, []byte("hello"), ev.uploaded[0])
	assert.Equal(t, "https://cdn.example/evidence/x.jpg", res.Activity.EvidenceURL)
}

func TestRecordActivityEvidenceFailureAbortsWholeCall(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	svc := newService(st, &fakeEvidence{uploadErr: errors.New("bucket unreachable")})

	input := types.ActivityInput{Type: models.ActivitySale, EvidenceData: "aGVsbG8="}
	_, err := svc.RecordActivity(context.Background(), 1, input)
	require.Error(t, err)
	assert.Equal(t, errorx.EvidenceUpload, errorx.CodeOf(err))
	assert.Empty(t, st.savedActivities, "no activity recorded without its evidence")
}

func TestRecordActivityBadBase64(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	svc := newService(st, &fakeEvidence{})

	input := types.ActivityInput{Type: models.ActivitySale, EvidenceData: "%%%not-base64%%%"}
	_, err := svc.RecordActivity(context.Background(), 1, input)
	assert.Equal(t, errorx.BadRequest, errorx.CodeOf(err))
}

func TestRecordActivityExplicitDateKeyWins(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	svc := newService(st, &fakeEvidence{})

	input := bookInput()
	input.DateKey = "2024-01-08"
	res, err := svc.RecordActivity(context.Background(), 1, input)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", res.Activity.DateKey)
	// Jan 8 is neither today nor yesterday, so the streak starts over.
	assert.Equal(t, 1, res.Streak)
}

func TestRecordActivitySerializesPerUser(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	svc := newService(st, &fakeEvidence{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordActivity(context.Background(), 1, bookInput())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// All eight raced on the same (type, day); exactly one point total.
	assert.Equal(t, 1, st.user.Points)
	assert.Equal(t, 1, st.user.Streak)
	assert.Len(t, st.savedActivities, 8, "every submission still lands in the ledger")
}

func TestListHierarchyTwoLevels(t *testing.T) {
	st := &fakeStore{user: member(0, 0)}
	svc := newService(st, &fakeEvidence{})

	members, err := svc.ListHierarchy(context.Background(), "coach")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].Nickname)
	require.Len(t, members[0].NestedDownlines, 1)
	assert.Equal(t, "a1", members[0].NestedDownlines[0].Nickname)
	assert.Empty(t, members[1].NestedDownlines)
}

func TestRecomputeAggregate(t *testing.T) {
	st := &fakeStore{user: member(0, 0,
		models.Activity{Type: models.ActivityBook, DateKey: "2024-01-10"},
		models.Activity{Type: models.ActivityCheckin, DateKey: "2024-01-10"},
		models.Activity{Type: models.ActivityCheckin, DateKey: "2024-01-09"},
	)}
	svc := newService(st, &fakeEvidence{})

	res, err := svc.RecomputeAggregate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Points)
	assert.Equal(t, 2, res.Streak)
	assert.Equal(t, [2]int{3, 2}, st.savedAggregates[len(st.savedAggregates)-1])
}
