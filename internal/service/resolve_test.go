package service

import (
	"context"
	"testing"

	"sessions-service/internal/models"
	"sessions-service/internal/storage"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolve_NoToken(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.Resolve(context.Background(), models.KindUser, "")
	require.ErrorIs(t, err, ErrNoToken)
}

func TestResolve_UnknownKind(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.Resolve(context.Background(), models.PrincipalKind("robot"), "tok")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolve_User_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	sig := "aabbccdd"
	user := &models.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		Name:      "User",
		Signature: &sig,
	}
	session := liveSession(user.ID)

	st.EXPECT().SessionBySID(gomock.Any(), session.SID).Return(session, nil)
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	principal, err := svc.Resolve(context.Background(), models.KindUser, session.SID)
	require.NoError(t, err)
	require.Equal(t, models.KindUser, principal.Kind)
	require.Equal(t, user.ID, principal.ID)
	require.Equal(t, user.Email, principal.Email)
	require.NotNil(t, principal.Signature)
	require.Equal(t, sig, *principal.Signature)
}

// TestResolve_User_CreateThenResolve — свежесозданная сессия немедленно
// разрешается в своего пользователя.
func TestResolve_User_CreateThenResolve(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "fresh@example.com", Name: "Fresh"}

	var saved models.Session
	st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *models.Session) error {
			saved = *s
			return nil
		})

	session, err := svc.CreateSession(context.Background(), user.ID, CreateSessionInput{})
	require.NoError(t, err)

	st.EXPECT().SessionBySID(gomock.Any(), session.SID).Return(&saved, nil)
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	principal, err := svc.Resolve(context.Background(), models.KindUser, session.SID)
	require.NoError(t, err)
	require.Equal(t, user.ID, principal.ID)
}

func TestResolve_User_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SessionBySID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	_, err := svc.Resolve(context.Background(), models.KindUser, "missing")
	require.ErrorIs(t, err, ErrInvalidToken)
}

// TestResolve_User_PrincipalMissing — аккаунт удалён: осиротевшая сессия
// зачищается, разрешение отказывает.
func TestResolve_User_PrincipalMissing(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	session := liveSession(uuid.New())

	gomock.InOrder(
		st.EXPECT().SessionBySID(gomock.Any(), session.SID).Return(session, nil),
		st.EXPECT().UserByID(gomock.Any(), session.UserID).Return(nil, storage.ErrNotFound),
		st.EXPECT().DeleteSession(gomock.Any(), session.SID).Return(nil),
	)

	_, err := svc.Resolve(context.Background(), models.KindUser, session.SID)
	require.ErrorIs(t, err, ErrPrincipalMissing)
}

// TestResolve_User_PrincipalMissing_CleanupRace — сироту успел удалить
// кто-то другой: отказ тот же, ошибка не маскируется зачисткой.
func TestResolve_User_PrincipalMissing_CleanupRace(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	session := liveSession(uuid.New())

	gomock.InOrder(
		st.EXPECT().SessionBySID(gomock.Any(), session.SID).Return(session, nil),
		st.EXPECT().UserByID(gomock.Any(), session.UserID).Return(nil, storage.ErrNotFound),
		st.EXPECT().DeleteSession(gomock.Any(), session.SID).Return(storage.ErrNotFound),
	)

	_, err := svc.Resolve(context.Background(), models.KindUser, session.SID)
	require.ErrorIs(t, err, ErrPrincipalMissing)
}

func TestResolve_Guide_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	guide := &models.Guide{ID: uuid.New(), Email: "guide@example.com", Name: "Guide", Active: true}
	session := liveGuideSession(guide.ID)

	st.EXPECT().GuideSessionByToken(gomock.Any(), session.Token).Return(session, nil)
	st.EXPECT().GuideByID(gomock.Any(), guide.ID).Return(guide, nil)

	principal, err := svc.Resolve(context.Background(), models.KindGuide, session.Token)
	require.NoError(t, err)
	require.Equal(t, models.KindGuide, principal.Kind)
	require.Equal(t, guide.ID, principal.ID)
	require.Nil(t, principal.Signature)
}

func TestResolve_Guide_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().GuideSessionByToken(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	_, err := svc.Resolve(context.Background(), models.KindGuide, "missing")
	require.ErrorIs(t, err, ErrInvalidToken)
}

// TestResolve_Guide_PrincipalMissing — гид удалён: осиротевшая сессия
// отзывается, разрешение отказывает.
func TestResolve_Guide_PrincipalMissing(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	session := liveGuideSession(uuid.New())

	gomock.InOrder(
		st.EXPECT().GuideSessionByToken(gomock.Any(), session.Token).Return(session, nil),
		st.EXPECT().GuideByID(gomock.Any(), session.GuideID).Return(nil, storage.ErrNotFound),
		st.EXPECT().RevokeGuideSession(gomock.Any(), session.Token).Return(true, nil),
	)

	_, err := svc.Resolve(context.Background(), models.KindGuide, session.Token)
	require.ErrorIs(t, err, ErrPrincipalMissing)
}
