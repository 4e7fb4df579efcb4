package services

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"github.com/wize-house/api-go/clock"
	"github.com/wize-house/api-go/errorx"
	"github.com/wize-house/api-go/models"
	"github.com/wize-house/api-go/scoring"
	"github.com/wize-house/api-go/storage"
	"github.com/wize-house/api-go/store"
	"github.com/wize-house/api-go/types"
)

// ActivityService owns the record-activity flow: payload validation, evidence
// upload, accrual, and the two-step ledger/aggregate write. Dependencies come
// in through the constructor; there is no package-level session state.
type ActivityService struct {
	Store    store.AccountStore
	Evidence storage.EvidenceStore
	Clock    *clock.Clock
	// Timeout bounds each RecordActivity/GetProfile call end to end, covering
	// store and evidence round-trips.
	Timeout time.Duration

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewActivityService(st store.AccountStore, ev storage.EvidenceStore, ck *clock.Clock, timeout time.Duration) *ActivityService {
	return &ActivityService{
		Store:    st,
		Evidence: ev,
		Clock:    ck,
		Timeout:  timeout,
		locks:    make(map[uint]*sync.Mutex),
	}
}

type RecordResult struct {
	scoring.Result
	Activity models.Activity `json:"activity"`
}

type TeamMember struct {
	models.User
	NestedDownlines []models.User `json:"nested_downlines"`
}

// userLock serializes writers per member. Two tabs recording at once would
// otherwise both read the same ledger and double-award a point.
func (s *ActivityService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *ActivityService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

// RecordActivity validates the payload, stores any inline evidence, runs the
// accrual engine against the current ledger, then appends the record and
// updates the aggregate. The ledger append commits first: if the aggregate
// write fails afterwards the record survives and RecomputeAggregate can catch
// the aggregate up later.
func (s *ActivityService) RecordActivity(ctx context.Context, userID uint, input types.ActivityInput) (*RecordResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := s.bound(ctx)
	defer cancel()

	user, err := s.Store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dateKey := input.DateKey
	if dateKey == "" {
		dateKey = s.Clock.Today()
	}

	evidenceURL := input.EvidenceURL
	if input.EvidenceData != "" {
		data, contentType, err := decodeEvidence(input.EvidenceData, input.EvidenceContentType)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.BadRequest, "evidence image is not valid base64")
		}
		url, err := s.Evidence.Upload(ctx, userID, data, contentType)
		if err != nil {
			// Do not record the activity without its evidence.
			return nil, errorx.Wrap(err, errorx.EvidenceUpload, "could not store evidence image")
		}
		evidenceURL = url
	}

	result := scoring.ApplyActivity(
		user.Points, user.Streak, user.History,
		input.Type, dateKey,
		s.Clock.Today(), s.Clock.Yesterday(),
	)

	activity := input.ToActivity(userID, dateKey, evidenceURL)
	if err := s.Store.SaveActivity(ctx, &activity); err != nil {
		return nil, err
	}

	if err := s.Store.UpdateAggregate(ctx, userID, result.Points, result.Streak); err != nil {
		return nil, errorx.Wrap(err, errorx.StoreFailure, "activity saved but points/streak not updated")
	}

	return &RecordResult{Result: result, Activity: activity}, nil
}

func (s *ActivityService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.Store.GetUser(ctx, userID)
}

// ListHierarchy expands a member's downline tree two levels deep. Deeper
// levels are the caller's problem.
func (s *ActivityService) ListHierarchy(ctx context.Context, nickname string) ([]TeamMember, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	direct, err := s.Store.FindByUpline(ctx, nickname)
	if err != nil {
		return nil, err
	}

	members := make([]TeamMember, 0, len(direct))
	for _, d := range direct {
		nested, err := s.Store.FindByUpline(ctx, d.Nickname)
		if err != nil {
			return nil, err
		}
		members = append(members, TeamMember{User: d, NestedDownlines: nested})
	}
	return members, nil
}

// RecomputeAggregate rebuilds points and streak from the ledger. Consistency
// backstop for aggregates left behind by a failed UpdateAggregate.
func (s *ActivityService) RecomputeAggregate(ctx context.Context, userID uint) (*scoring.Result, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := s.bound(ctx)
	defer cancel()

	user, err := s.Store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	points, streak := scoring.Recompute(user.History)
	if err := s.Store.UpdateAggregate(ctx, userID, points, streak); err != nil {
		return nil, err
	}
	return &scoring.Result{Points: points, Streak: streak}, nil
}

func (s *ActivityService) GetMemberByNickname(ctx context.Context, nickname string) (*models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.Store.GetUserByNickname(ctx, nickname)
}

func (s *ActivityService) SearchMembers(ctx context.Context, query string, limit int) ([]models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.Store.SearchUsers(ctx, query, limit)
}

func (s *ActivityService) ListMembers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.Store.ListUsers(ctx)
}

func (s *ActivityService) FindDownlines(ctx context.Context, nickname string) ([]models.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.Store.FindByUpline(ctx, nickname)
}

// ResetHistory is the administrative reset. Takes the member's writer lock so
// it cannot interleave with an in-flight RecordActivity.
func (s *ActivityService) ResetHistory(ctx context.Context, userID uint) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.Store.ResetHistory(ctx, userID)
}

// decodeEvidence accepts either a bare base64 string or a browser-style data
// URL ("data:image/png;base64,...."). The data URL's media type wins over the
// explicit one.
func decodeEvidence(data, contentType string) ([]byte, string, error) {
	if strings.HasPrefix(data, "data:") {
		rest := strings.TrimPrefix(data, "data:")
		if idx := strings.Index(rest, ";base64,"); idx >= 0 {
			contentType = rest[:idx]
			data = rest[idx+len(";base64,"):]
		}
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", err
	}
	return decoded, contentType, nil
}
