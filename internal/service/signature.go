package service

import (
	"context"
	"errors"
	"fmt"

	"sessions-service/internal/pkg/log"
	"sessions-service/internal/storage"
	"sessions-service/internal/token"

	"github.com/google/uuid"
)

// AssignSignature назначает пользователю глобально-уникальную подпись
// устройства — не более одного раза за всю жизнь пользователя.
//
// Цикл до cfg.SignatureMaxAttempts раз: генерируем кандидата и пробуем
// атомарную условную запись «signature = candidate WHERE _id = userID AND
// signature IS NULL». Исходы:
//   - запись затронута — возвращаем кандидата;
//   - подпись уже назначена (в т.ч. конкурентным вызовом) — возвращаем
//     ("", nil) сразу, без ретраев: цель «у пользователя есть подпись»
//     уже достигнута чужой записью;
//   - кандидат занят другим пользователем — повторяем с новым кандидатом;
//   - любая иная ошибка всплывает немедленно.
//
// Исчерпание попыток — фатальная для вызова ошибка ErrSignatureExhausted:
// признак устойчивой контенции или сломанного источника случайности.
func (s *Service) AssignSignature(ctx context.Context, userID uuid.UUID) (string, error) {
	const op = "service/signature/AssignSignature"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		lg.Warn("invalid argument: empty user_id")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	maxAttempts := s.cfg.SignatureMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := token.New(s.cfg.SignatureBytes)

		err := s.storage.AssignUserSignature(ctx, userID, candidate)
		switch {
		case err == nil:
			return candidate, nil
		case errors.Is(err, storage.ErrAlreadyExists):
			// Подпись уже стоит — чужая запись нас устраивает.
			return "", nil
		case errors.Is(err, storage.ErrSignatureTaken):
			// Кандидат занят — новый кандидат, новая попытка.
			continue
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("user_not_found")
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("assign_signature_failed", "err", err)
			return "", fmt.Errorf("%s: %w", op, mapStorageErr(err))
		}
	}

	lg.Error("signature_attempts_exhausted", "max_attempts", maxAttempts)
	return "", fmt.Errorf("%s: %w", op, ErrSignatureExhausted)
}

// BackfillReport — итог единоразового backfill-скана.
type BackfillReport struct {
	// Scanned — сколько пользователей без подписи нашёл скан.
	Scanned int
	// Assigned — скольким подпись назначена этим вызовом.
	Assigned int
	// Skipped — у скольких подпись появилась раньше (конкурентная запись).
	Skipped int
	// Failed — по скольким записям попытки исчерпаны; скан при этом
	// продолжается, падает только запись.
	Failed int
}

// BackfillSignatures назначает подпись каждому пользователю, у которого
// её ещё нет. Переносимые сбои отдельных записей не прерывают скан:
// они логируются и попадают в отчёт. Ошибка листинга или недоступность
// хранилища прерывают операцию целиком.
func (s *Service) BackfillSignatures(ctx context.Context) (BackfillReport, error) {
	const op = "service/signature/BackfillSignatures"

	lg := log.From(ctx).With("op", op)

	ids, err := s.storage.UserIDsWithoutSignature(ctx)
	if err != nil {
		lg.Error("backfill_listing_failed", "err", err)
		return BackfillReport{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	report := BackfillReport{Scanned: len(ids)}

	for _, id := range ids {
		sig, err := s.AssignSignature(ctx, id)
		switch {
		case err == nil && sig != "":
			report.Assigned++
		case err == nil:
			report.Skipped++
		case errors.Is(err, ErrUnavailable):
			// Инфраструктурный отказ — продолжать бессмысленно.
			return report, fmt.Errorf("%s: %w", op, ErrUnavailable)
		default:
			lg.Warn("backfill_record_failed", "user_id", id.String(), "err", err)
			report.Failed++
		}
	}

	lg.Info("backfill_done",
		"scanned", report.Scanned,
		"assigned", report.Assigned,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	return report, nil
}
