package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"sessions-service/internal/cache"
	"sessions-service/internal/models"
	"sessions-service/internal/storage"
	"sessions-service/internal/token"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeCache — потокобезопасная in-memory реализация cache.SessionCache
// для модульных тестов; TTL не имитирует.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*cache.SessionEntry
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*cache.SessionEntry)}
}

func (f *fakeCache) Get(_ context.Context, accessToken string) (*cache.SessionEntry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[accessToken]
	return entry, ok, nil
}

func (f *fakeCache) Set(_ context.Context, accessToken string, entry *cache.SessionEntry, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[accessToken] = entry
	return nil
}

func (f *fakeCache) MarkRevoked(_ context.Context, accessToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[accessToken]; ok {
		entry.Revoked = true
		return nil
	}
	f.entries[accessToken] = &cache.SessionEntry{Revoked: true, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	return nil
}

func (f *fakeCache) Close() error { return nil }

func liveGuideSession(guideID uuid.UUID) *models.GuideSession {
	now := time.Now().UTC()
	return &models.GuideSession{
		ID:           "64f000000000000000000001",
		Token:        token.New(32),
		RefreshToken: token.New(32),
		GuideID:      guideID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}
}

func TestCreateGuideSession_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	guideID := uuid.New()
	st.EXPECT().SaveGuideSession(gomock.Any(), gomock.Any()).Return(nil)

	session, err := svc.CreateGuideSession(context.Background(), guideID, CreateGuideSessionInput{})
	require.NoError(t, err)
	require.Equal(t, guideID, session.GuideID)
	require.NotEmpty(t, session.Token)
	require.NotEmpty(t, session.RefreshToken)

	// Токены независимо случайны.
	require.NotEqual(t, session.Token, session.RefreshToken)
	require.False(t, session.Revoked)
	require.WithinDuration(t, session.CreatedAt.Add(testCfg().GuideSessionTTL), session.ExpiresAt, time.Second)
}

func TestCreateGuideSession_SuppliedRefreshToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveGuideSession(gomock.Any(), gomock.Any()).Return(nil)

	session, err := svc.CreateGuideSession(context.Background(), uuid.New(), CreateGuideSessionInput{
		RefreshToken: "caller-supplied-refresh",
	})
	require.NoError(t, err)
	require.Equal(t, "caller-supplied-refresh", session.RefreshToken)
}

func TestCreateGuideSession_EmptyGuideID(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateGuideSession(context.Background(), uuid.Nil, CreateGuideSessionInput{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateGuideSession_TokenCollision_Retries(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	gomock.InOrder(
		st.EXPECT().SaveGuideSession(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists),
		st.EXPECT().SaveGuideSession(gomock.Any(), gomock.Any()).Return(nil),
	)

	_, err := svc.CreateGuideSession(context.Background(), uuid.New(), CreateGuideSessionInput{})
	require.NoError(t, err)
}

func TestCreateGuideSession_CollisionExhausted(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveGuideSession(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists).Times(createMaxAttempts)

	_, err := svc.CreateGuideSession(context.Background(), uuid.New(), CreateGuideSessionInput{
		RefreshToken: "fixed-refresh",
	})
	require.ErrorIs(t, err, ErrTokenCollision)
}

func TestVerifyGuideSession_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	want := liveGuideSession(uuid.New())
	st.EXPECT().GuideSessionByToken(gomock.Any(), want.Token).Return(want, nil)

	got, err := svc.VerifyGuideSession(context.Background(), want.Token)
	require.NoError(t, err)
	require.Equal(t, want.GuideID, got.GuideID)
}

func TestVerifyGuideSession_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().GuideSessionByToken(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	_, err := svc.VerifyGuideSession(context.Background(), "missing")
	require.ErrorIs(t, err, ErrInvalidToken)
}

// TestVerifyGuideSession_RevokedNotYetFiltered — запись пришла из хранилища
// с выставленным revoked: перепроверка на сервисном слое отсекает.
func TestVerifyGuideSession_RevokedNotYetFiltered(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	revoked := liveGuideSession(uuid.New())
	revoked.Revoked = true
	st.EXPECT().GuideSessionByToken(gomock.Any(), revoked.Token).Return(revoked, nil)

	_, err := svc.VerifyGuideSession(context.Background(), revoked.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGuideSession_Empty(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.VerifyGuideSession(context.Background(), "")
	require.ErrorIs(t, err, ErrNoToken)
}

// TestVerifyGuideSession_CacheNegativeFastPath — отозванный вердикт из кэша
// отсекает запрос до похода в хранилище.
func TestVerifyGuideSession_CacheNegativeFastPath(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	fc := newFakeCache()
	svc.SetSessionCache(fc)

	require.NoError(t, fc.MarkRevoked(context.Background(), "revoked-token"))

	// Хранилище не должно вызываться: ожиданий на моке нет.
	_, err := svc.VerifyGuideSession(context.Background(), "revoked-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

// TestVerifyGuideSession_CachePositiveGoesToStore — положительный вердикт
// в кэше не освобождает от похода в хранилище: источник истины — оно.
func TestVerifyGuideSession_CachePositiveGoesToStore(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	fc := newFakeCache()
	svc.SetSessionCache(fc)

	want := liveGuideSession(uuid.New())
	require.NoError(t, fc.Set(context.Background(), want.Token, &cache.SessionEntry{
		GuideID:   want.GuideID,
		ExpiresAt: want.ExpiresAt,
	}, time.Hour))

	st.EXPECT().GuideSessionByToken(gomock.Any(), want.Token).Return(want, nil)

	got, err := svc.VerifyGuideSession(context.Background(), want.Token)
	require.NoError(t, err)
	require.Equal(t, want.GuideID, got.GuideID)
}

func TestRevokeGuideSession_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().RevokeGuideSession(gomock.Any(), "tok").Return(true, nil)

	found, err := svc.RevokeGuideSession(context.Background(), "tok")
	require.NoError(t, err)
	require.True(t, found)
}

func TestRevokeGuideSession_UnknownToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().RevokeGuideSession(gomock.Any(), "missing").Return(false, nil)

	found, err := svc.RevokeGuideSession(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, found)
}

// TestRevokeGuideSession_BlocksVerify — после отзыва токен перестаёт
// проходить проверку.
func TestRevokeGuideSession_BlocksVerify(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	fc := newFakeCache()
	svc.SetSessionCache(fc)

	st.EXPECT().RevokeGuideSession(gomock.Any(), "tok").Return(true, nil)

	found, err := svc.RevokeGuideSession(context.Background(), "tok")
	require.NoError(t, err)
	require.True(t, found)

	// Отрицательный вердикт берётся из кэша, повторного похода в хранилище нет.
	_, err = svc.VerifyGuideSession(context.Background(), "tok")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeAllGuideSessions_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	guideID := uuid.New()
	st.EXPECT().RevokeAllGuideSessions(gomock.Any(), guideID).Return(int64(4), nil)

	count, err := svc.RevokeAllGuideSessions(context.Background(), guideID)
	require.NoError(t, err)
	require.Equal(t, int64(4), count)
}

func TestRevokeAllGuideSessions_EmptyGuideID(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RevokeAllGuideSessions(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestRevokeAllGuideSessions_InvalidatesCachedVerdicts — при включённом
// кэше затронутые токены помечаются отозванными.
func TestRevokeAllGuideSessions_InvalidatesCachedVerdicts(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	fc := newFakeCache()
	svc.SetSessionCache(fc)

	guideID := uuid.New()
	tokens := []string{"tok-1", "tok-2"}

	gomock.InOrder(
		st.EXPECT().ActiveGuideTokens(gomock.Any(), guideID).Return(tokens, nil),
		st.EXPECT().RevokeAllGuideSessions(gomock.Any(), guideID).Return(int64(2), nil),
	)

	count, err := svc.RevokeAllGuideSessions(context.Background(), guideID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	for _, tok := range tokens {
		entry, ok, err := fc.Get(context.Background(), tok)
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, entry.Revoked)
	}
}

func TestRotateRefreshToken_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	session := liveGuideSession(uuid.New())
	oldRefresh := session.RefreshToken

	var issued string
	st.EXPECT().ReplaceRefreshToken(gomock.Any(), oldRefresh, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, newRefresh string) (*models.GuideSession, error) {
			issued = newRefresh
			rotated := *session
			rotated.RefreshToken = newRefresh
			return &rotated, nil
		})

	result, err := svc.RotateRefreshToken(context.Background(), oldRefresh)
	require.NoError(t, err)
	require.Equal(t, session.ID, result.SessionID)
	require.Equal(t, issued, result.NewRefreshToken)
	require.NotEqual(t, oldRefresh, result.NewRefreshToken)
}

// TestRotateRefreshToken_OldValueDead — ротация инвалидирует старое
// значение: повторная попытка с ним даёт ErrInvalidToken.
func TestRotateRefreshToken_OldValueDead(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	session := liveGuideSession(uuid.New())
	oldRefresh := session.RefreshToken

	gomock.InOrder(
		st.EXPECT().ReplaceRefreshToken(gomock.Any(), oldRefresh, gomock.Any()).Return(session, nil),
		st.EXPECT().ReplaceRefreshToken(gomock.Any(), oldRefresh, gomock.Any()).Return(nil, storage.ErrNotFound),
	)

	_, err := svc.RotateRefreshToken(context.Background(), oldRefresh)
	require.NoError(t, err)

	_, err = svc.RotateRefreshToken(context.Background(), oldRefresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRotateRefreshToken_NewValueCollision_Retries(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	session := liveGuideSession(uuid.New())

	gomock.InOrder(
		st.EXPECT().ReplaceRefreshToken(gomock.Any(), "old", gomock.Any()).Return(nil, storage.ErrAlreadyExists),
		st.EXPECT().ReplaceRefreshToken(gomock.Any(), "old", gomock.Any()).Return(session, nil),
	)

	result, err := svc.RotateRefreshToken(context.Background(), "old")
	require.NoError(t, err)
	require.NotEmpty(t, result.NewRefreshToken)
}

func TestRotateRefreshToken_Empty(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RotateRefreshToken(context.Background(), "")
	require.ErrorIs(t, err, ErrNoToken)
}

func TestCleanupGuideSessions_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().DeleteExpiredGuideSessions(gomock.Any(), gomock.Any()).Return(int64(2), nil)

	count, err := svc.CleanupGuideSessions(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}
