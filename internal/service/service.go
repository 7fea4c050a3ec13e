// service содержит бизнес-логику sessions-сервиса: жизненный цикл
// пользовательских сессий и сессий гидов, назначение подписей устройств
// и пайплайн разрешения предъявленного токена в принципала.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при
//     условии, что переданное хранилище (storage.Storage) потокобезопасно.
//   - Все гарантии уникальности и отзыва опираются на атомарные условные
//     записи хранилища; сервис никогда не делает read-then-write там,
//     где гонку должна разрешать БД.
//   - Ошибки возвращаются и далее маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"sessions-service/internal/cache"
	"sessions-service/internal/config"
	"sessions-service/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные данные (пустой id и т.п.).
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoToken — токен не предъявлен. Для HTTP-слоя это «не аутентифицирован»,
	// а не ошибка сервиса. Транспорт: 401.
	ErrNoToken = errors.New("no token")

	// ErrInvalidToken — токен не найден, просрочен или отозван.
	// Эти случаи намеренно неразличимы для вызывающей стороны
	// (ни тайминговых, ни перечислительных сигналов). Транспорт: 401 +
	// указание очистить клиентские артефакты.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrPrincipalMissing — сессия есть, а её принципал удалён.
	// Осиротевшая запись к этому моменту уже зачищена. Транспорт: 401.
	ErrPrincipalMissing = errors.New("principal missing")

	// ErrNotFound — сущность не найдена (пользователь/гид при назначении
	// подписи). Транспорт: 404.
	ErrNotFound = errors.New("not found")

	// ErrTokenCollision — исчерпаны попытки сгенерировать уникальный
	// токен (крайне редкие коллизии при сохранении). Транспорт: 500.
	ErrTokenCollision = errors.New("token collision")

	// ErrSignatureExhausted — исчерпан лимит попыток назначить уникальную
	// подпись; признак устойчивой контенции или сломанного источника
	// случайности. Логируется и всплывает. Транспорт: 500.
	ErrSignatureExhausted = errors.New("signature attempts exhausted")

	// ErrUnavailable — хранилище недоступно; без внутренних ретраев и без
	// деградированных режимов («как бы аутентифицирован» не бывает).
	// Транспорт: 503.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInternal — прочие ошибки хранилища/БД/контекста. Транспорт: 500.
	ErrInternal = errors.New("internal error")
)

// createMaxAttempts — предел попыток при коллизии первичного токена на создании.
const createMaxAttempts = 5

// Service описывает бизнес-логику sessions-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.SessionsConfig
	scache  cache.SessionCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.SessionsConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetSessionCache устанавливает кэш вердиктов сессий гидов (опционально).
func (s *Service) SetSessionCache(c cache.SessionCache) {
	s.scache = c
}

// mapStorageErr переводит инфраструктурные ошибки хранилища в ошибки сервиса.
func mapStorageErr(err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		return ErrUnavailable
	}

	return ErrInternal
}
