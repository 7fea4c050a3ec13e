package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sessions-service/internal/models"
	"sessions-service/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// sessionDoc — документ пользовательской сессии в коллекции sessions.
// Идентификаторы принципалов храним строками — предсказуемое
// представление в BSON и читаемые фильтры.
type sessionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	SID           string             `bson:"sid"`
	UserID        string             `bson:"user_id"`
	DeviceKey     string             `bson:"device_key,omitempty"`
	UserAgent     string             `bson:"user_agent,omitempty"`
	SourceAddress string             `bson:"source_address,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	ExpiresAt     time.Time          `bson:"expires_at"`
	Metadata      map[string]string  `bson:"metadata,omitempty"`
}

func sessionToDoc(s *models.Session) sessionDoc {
	return sessionDoc{
		SID:           s.SID,
		UserID:        s.UserID.String(),
		DeviceKey:     s.DeviceKey,
		UserAgent:     s.UserAgent,
		SourceAddress: s.SourceAddress,
		CreatedAt:     toMS(s.CreatedAt),
		ExpiresAt:     toMS(s.ExpiresAt),
		Metadata:      s.Metadata,
	}
}

func (d sessionDoc) toModel() (*models.Session, error) {
	uid, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user_id: %w", err)
	}

	return &models.Session{
		SID:           d.SID,
		UserID:        uid,
		DeviceKey:     d.DeviceKey,
		UserAgent:     d.UserAgent,
		SourceAddress: d.SourceAddress,
		CreatedAt:     d.CreatedAt.UTC(),
		ExpiresAt:     d.ExpiresAt.UTC(),
		Metadata:      d.Metadata,
	}, nil
}

// SaveSession сохраняет новую пользовательскую сессию.
// Конфликт по sid — storage.ErrAlreadyExists.
func (m *Mongo) SaveSession(ctx context.Context, session *models.Session) error {
	const op = "storage/mongo/SaveSession"

	if _, err := m.sessions.InsertOne(ctx, sessionToDoc(session)); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return nil
}

// SessionBySID находит живую сессию по sid.
// Просроченная запись отсекается уже в фильтре запроса: отсутствующая
// и просроченная неразличимы для вызывающей стороны.
func (m *Mongo) SessionBySID(ctx context.Context, sid string) (*models.Session, error) {
	const op = "storage/mongo/SessionBySID"

	filter := bson.D{
		{Key: "sid", Value: sid},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: toMS(time.Now())}}},
	}

	var doc sessionDoc
	if err := m.sessions.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	out, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// DeleteSession удаляет сессию по sid. Отсутствие записи — storage.ErrNotFound.
func (m *Mongo) DeleteSession(ctx context.Context, sid string) error {
	const op = "storage/mongo/DeleteSession"

	res, err := m.sessions.DeleteOne(ctx, bson.D{{Key: "sid", Value: sid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteExpiredSessions удаляет все записи с expires_at <= now.
// Идемпотентна; безопасна при конкурентных чтениях — пайплайн
// валидации сам перепроверяет expires_at.
func (m *Mongo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage/mongo/DeleteExpiredSessions"

	filter := bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: toMS(now)}}}}

	res, err := m.sessions.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return res.DeletedCount, nil
}
