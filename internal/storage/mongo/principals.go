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
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDoc — документ пользователя в коллекции users.
// Signature — *string с omitempty: до назначения поле в документе
// отсутствует, и фильтр {signature: nil} матчится; частичный уникальный
// индекс действует только на назначенные подписи.
type userDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name,omitempty"`
	Signature *string   `bson:"signature,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// guideDoc — документ гида в коллекции guides.
type guideDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name,omitempty"`
	Active    bool      `bson:"active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d userDoc) toModel() (*models.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}

	return &models.User{
		ID:        id,
		Email:     d.Email,
		Name:      d.Name,
		Signature: d.Signature,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

func (d guideDoc) toModel() (*models.Guide, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse guide id: %w", err)
	}

	return &models.Guide{
		ID:        id,
		Email:     d.Email,
		Name:      d.Name,
		Active:    d.Active,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

// UserByID находит пользователя по ID.
func (m *Mongo) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage/mongo/UserByID"

	var doc userDoc
	if err := m.users.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
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

// GuideByID находит гида по ID.
func (m *Mongo) GuideByID(ctx context.Context, id uuid.UUID) (*models.Guide, error) {
	const op = "storage/mongo/GuideByID"

	var doc guideDoc
	if err := m.guides.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
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

// AssignUserSignature выполняет атомарную условную запись
// «signature = candidate WHERE _id = userID AND signature IS NULL».
// Read-then-write здесь недопустим: гонку двух конкурентных назначений
// разрешает сама БД. Возможные исходы:
//   - запись затронута — подпись назначена;
//   - конфликт уникальности — candidate занят другим пользователем,
//     storage.ErrSignatureTaken (можно повторить с новым кандидатом);
//   - запись не затронута, подпись уже стоит — storage.ErrAlreadyExists;
//   - запись не затронута, пользователя нет — storage.ErrNotFound.
func (m *Mongo) AssignUserSignature(ctx context.Context, userID uuid.UUID, candidate string) error {
	const op = "storage/mongo/AssignUserSignature"

	filter := bson.D{
		{Key: "_id", Value: userID.String()},
		{Key: "signature", Value: nil},
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "signature", Value: candidate},
		{Key: "updated_at", Value: toMS(time.Now())},
	}}}

	res, err := m.users.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrSignatureTaken)
		}

		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	if res.MatchedCount > 0 {
		return nil
	}

	// Фильтр не совпал: либо пользователя нет, либо подпись уже назначена.
	cnt, err := m.users.CountDocuments(ctx, bson.D{{Key: "_id", Value: userID.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	if cnt == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
}

// UserIDsWithoutSignature возвращает пользователей без назначенной подписи.
// Используется единоразовым backfill-сканом.
func (m *Mongo) UserIDsWithoutSignature(ctx context.Context) ([]uuid.UUID, error) {
	const op = "storage/mongo/UserIDsWithoutSignature"

	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}})

	cur, err := m.users.Find(ctx, bson.D{{Key: "signature", Value: nil}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer cur.Close(ctx)

	var ids []uuid.UUID
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}

		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: parse id: %w", op, err)
		}

		ids = append(ids, id)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, mapErr(err))
	}

	return ids, nil
}
