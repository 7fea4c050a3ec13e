package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sessions-service/internal/config"
	"sessions-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	sessionsCollection      = "sessions"
	guideSessionsCollection = "guide_sessions"
	usersCollection         = "users"
	guidesCollection        = "guides"

	defaultDBName = "sessions"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg           *config.Config
	client        *mongodriver.Client
	db            *mongodriver.Database
	sessions      *mongodriver.Collection
	guideSessions *mongodriver.Collection
	users         *mongodriver.Collection
	guides        *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает
// коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w: %v", storage.ErrUnavailable, err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:           cfg,
		client:        cli,
		db:            db,
		sessions:      db.Collection(sessionsCollection),
		guideSessions: db.Collection(guideSessionsCollection),
		users:         db.Collection(usersCollection),
		guides:        db.Collection(guidesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы, на которых держатся инварианты сервиса:
//   - sessions: уникальный sid (первичный ключ поиска) и expires_at
//     для явной зачистки;
//   - guide_sessions: уникальный token, уникальный разреженный
//     refresh_token, TTL по expires_at (expireAfterSeconds=0 ->
//     используется временная метка, сохранённая в документе),
//     guide_id для revoke-all;
//   - users: частичный уникальный индекс по signature — глобальная
//     уникальность подписи устройства среди назначенных.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	sessionIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "sid", Value: 1}},
			Options: options.Index().SetName("uniq_sid").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("expires_at_asc"),
		},
	}

	if _, err := m.sessions.Indexes().CreateMany(ctx, sessionIdx); err != nil {
		return fmt.Errorf("mongo ensure session indexes: %w", err)
	}

	guideIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("uniq_token").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "refresh_token", Value: 1}},
			Options: options.Index().SetName("uniq_refresh_token").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "guide_id", Value: 1}},
			Options: options.Index().SetName("guide_id_asc"),
		},
	}

	if _, err := m.guideSessions.Indexes().CreateMany(ctx, guideIdx); err != nil {
		return fmt.Errorf("mongo ensure guide session indexes: %w", err)
	}

	userIdx := []mongodriver.IndexModel{
		{
			Keys: bson.D{{Key: "signature", Value: 1}},
			Options: options.Index().
				SetName("uniq_signature").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "signature", Value: bson.D{{Key: "$type", Value: "string"}}}}),
		},
	}

	if _, err := m.users.Indexes().CreateMany(ctx, userIdx); err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает
// разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}

// toMS нормализует время под хранение: MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// mapErr переводит ошибки драйвера в ошибки хранилища:
// таймауты и разрывы соединения — в storage.ErrUnavailable,
// конфликт уникальности — в storage.ErrAlreadyExists.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case mongodriver.IsDuplicateKeyError(err):
		return storage.ErrAlreadyExists
	case mongodriver.IsTimeout(err),
		mongodriver.IsNetworkError(err),
		errors.Is(err, mongodriver.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	default:
		return err
	}
}
