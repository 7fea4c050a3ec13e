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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// guideSessionDoc — документ сессии гида в коллекции guide_sessions.
// Просроченные записи коллекция удаляет сама (TTL-индекс по expires_at),
// поэтому в фильтрах чтения мы всё равно перепроверяем expires_at:
// монговский TTL-монитор срабатывает с задержкой до минуты.
type guideSessionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Token         string             `bson:"token"`
	RefreshToken  string             `bson:"refresh_token,omitempty"`
	GuideID       string             `bson:"guide_id"`
	Revoked       bool               `bson:"revoked"`
	UserAgent     string             `bson:"user_agent,omitempty"`
	SourceAddress string             `bson:"source_address,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	ExpiresAt     time.Time          `bson:"expires_at"`
}

func guideSessionToDoc(s *models.GuideSession) guideSessionDoc {
	return guideSessionDoc{
		Token:         s.Token,
		RefreshToken:  s.RefreshToken,
		GuideID:       s.GuideID.String(),
		Revoked:       s.Revoked,
		UserAgent:     s.UserAgent,
		SourceAddress: s.SourceAddress,
		CreatedAt:     toMS(s.CreatedAt),
		ExpiresAt:     toMS(s.ExpiresAt),
	}
}

func (d guideSessionDoc) toModel() (*models.GuideSession, error) {
	gid, err := uuid.Parse(d.GuideID)
	if err != nil {
		return nil, fmt.Errorf("parse guide_id: %w", err)
	}

	return &models.GuideSession{
		ID:            d.ID.Hex(),
		Token:         d.Token,
		RefreshToken:  d.RefreshToken,
		GuideID:       gid,
		Revoked:       d.Revoked,
		UserAgent:     d.UserAgent,
		SourceAddress: d.SourceAddress,
		CreatedAt:     d.CreatedAt.UTC(),
		ExpiresAt:     d.ExpiresAt.UTC(),
	}, nil
}

// SaveGuideSession сохраняет новую сессию гида.
// Конфликт по token/refresh_token — storage.ErrAlreadyExists.
func (m *Mongo) SaveGuideSession(ctx context.Context, session *models.GuideSession) error {
	const op = "storage/mongo/SaveGuideSession"

	res, err := m.guideSessions.InsertOne(ctx, guideSessionToDoc(session))
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid.Hex()
	}

	return nil
}

// GuideSessionByToken находит живую сессию по access-токену.
// Отозванная, просроченная и отсутствующая записи неразличимы — ErrNotFound.
func (m *Mongo) GuideSessionByToken(ctx context.Context, token string) (*models.GuideSession, error) {
	const op = "storage/mongo/GuideSessionByToken"

	filter := bson.D{
		{Key: "token", Value: token},
		{Key: "revoked", Value: false},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: toMS(time.Now())}}},
	}

	var doc guideSessionDoc
	if err := m.guideSessions.FindOne(ctx, filter).Decode(&doc); err != nil {
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

// RevokeGuideSession помечает сессию отозванной (защёлка false→true).
// Возвращает true, если запись была найдена; повторный вызов — не ошибка.
func (m *Mongo) RevokeGuideSession(ctx context.Context, token string) (bool, error) {
	const op = "storage/mongo/RevokeGuideSession"

	res, err := m.guideSessions.UpdateOne(ctx,
		bson.D{{Key: "token", Value: token}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "revoked", Value: true}}}},
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return res.MatchedCount > 0, nil
}

// RevokeAllGuideSessions отзывает все неотозванные сессии гида одним
// условным bulk-обновлением. Записи, созданные между чтением и записью,
// чтение здесь не участвует — фильтр и запись атомарны на стороне БД.
func (m *Mongo) RevokeAllGuideSessions(ctx context.Context, guideID uuid.UUID) (int64, error) {
	const op = "storage/mongo/RevokeAllGuideSessions"

	res, err := m.guideSessions.UpdateMany(ctx,
		bson.D{
			{Key: "guide_id", Value: guideID.String()},
			{Key: "revoked", Value: false},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "revoked", Value: true}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return res.ModifiedCount, nil
}

// ReplaceRefreshToken атомарно заменяет refresh-токен у неотозванной
// живой записи. Token и _id при ротации не меняются.
// Нет подходящей записи — storage.ErrNotFound (сигнал возможного
// повторного использования украденного refresh-токена).
func (m *Mongo) ReplaceRefreshToken(ctx context.Context, oldRefresh, newRefresh string) (*models.GuideSession, error) {
	const op = "storage/mongo/ReplaceRefreshToken"

	filter := bson.D{
		{Key: "refresh_token", Value: oldRefresh},
		{Key: "revoked", Value: false},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: toMS(time.Now())}}},
	}

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "refresh_token", Value: newRefresh}}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc guideSessionDoc
	if err := m.guideSessions.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
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

// ActiveGuideTokens возвращает access-токены живых сессий гида.
// Только чтение; используется сервисом для инвалидации кэша после revoke-all.
func (m *Mongo) ActiveGuideTokens(ctx context.Context, guideID uuid.UUID) ([]string, error) {
	const op = "storage/mongo/ActiveGuideTokens"

	filter := bson.D{
		{Key: "guide_id", Value: guideID.String()},
		{Key: "revoked", Value: false},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: toMS(time.Now())}}},
	}

	opts := options.Find().SetProjection(bson.D{{Key: "token", Value: 1}})

	cur, err := m.guideSessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer cur.Close(ctx)

	var tokens []string
	for cur.Next(ctx) {
		var doc struct {
			Token string `bson:"token"`
		}

		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		tokens = append(tokens, doc.Token)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, mapErr(err))
	}

	return tokens, nil
}

// DeleteExpiredGuideSessions — явная зачистка просроченных записей.
// Дополняет TTL-индекс, но не заменяет его.
func (m *Mongo) DeleteExpiredGuideSessions(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage/mongo/DeleteExpiredGuideSessions"

	filter := bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: toMS(now)}}}}

	res, err := m.guideSessions.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return res.DeletedCount, nil
}
