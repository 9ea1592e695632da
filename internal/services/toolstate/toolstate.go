// Package toolstate управляет состоянием инструментов: статусом эксплуатации,
// флагом использования и отчётами о длительности сеансов.
//
// Каждый переход меняет строку инструмента и дописывает запись журнала
// в одной транзакции хранилища. Переходы одного инструмента применяются
// по очереди, при гонке побеждает последний.
package toolstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/acnode-server/internal/models"
	"github.com/magabrotheeeer/acnode-server/internal/services/audit"
	"github.com/magabrotheeeer/acnode-server/internal/storage"
)

// Repository описывает операции хранилища, нужные движку состояний.
type Repository interface {
	GetTool(ctx context.Context, id int64) (*models.Tool, error)
	GetCard(ctx context.Context, cardID string) (*models.Card, error)
	SetToolStatus(ctx context.Context, toolID int64, status models.ToolStatus, entry models.LogEntry) (models.LogEntry, error)
	SetToolInUse(ctx context.Context, toolID int64, inUseBy *int64, entry models.LogEntry) (models.LogEntry, error)
	RecordUsage(ctx context.Context, rec models.UsageRecord, entry models.LogEntry) (models.LogEntry, error)
}

// LevelReader возвращает сохранённый уровень прав пользователя на инструмент.
type LevelReader interface {
	StoredLevel(ctx context.Context, userID, toolID int64) (models.PermissionLevel, error)
}

// Auditor получает записи журнала после фиксации транзакции.
type Auditor interface {
	Committed(kind audit.Kind, stored models.LogEntry)
}

// ChangeNotifier получает сигнал об изменении состояния инструментов.
type ChangeNotifier interface {
	ToolsChanged(ctx context.Context)
}

// Engine выполняет переходы состояния инструментов.
type Engine struct {
	repo     Repository
	levels   LevelReader
	auditor  Auditor
	notifier ChangeNotifier
	log      *slog.Logger
}

// New создает Engine. notifier может быть nil.
func New(repo Repository, levels LevelReader, auditor Auditor, notifier ChangeNotifier, log *slog.Logger) *Engine {
	return &Engine{
		repo:     repo,
		levels:   levels,
		auditor:  auditor,
		notifier: notifier,
		log:      log,
	}
}

// Status возвращает статус инструмента; ok == false, если инструмента нет.
func (e *Engine) Status(ctx context.Context, toolID int64) (models.ToolStatus, bool, error) {
	tool, ok, err := e.tool(ctx, "toolstate.Status", toolID)
	if err != nil || !ok {
		return models.ToolOutOfService, ok, err
	}
	return tool.Status, true, nil
}

// InUse возвращает инструмент для проверки флага использования; ok == false, если инструмента нет.
func (e *Engine) InUse(ctx context.Context, toolID int64) (*models.Tool, bool, error) {
	return e.tool(ctx, "toolstate.InUse", toolID)
}

// SetStatus меняет статус инструмента от имени владельца карты cardID.
// Ввод в эксплуатацию разрешён только обслуживающему, вывод из неё — любой известной карте.
// status приходит от узла как есть; значение вне перечисления отклоняется.
func (e *Engine) SetStatus(ctx context.Context, toolID int64, status int, cardID string) (models.Outcome, error) {
	const op = "toolstate.SetStatus"

	log := e.log.With(slog.String("op", op), slog.Int64("tool_id", toolID), slog.String("card_id", cardID))

	tool, card, outcome, err := e.toolAndCard(ctx, op, toolID, cardID)
	if tool == nil || card == nil {
		return outcome, err
	}

	next, err := models.ParseToolStatus(status)
	if err != nil {
		log.Info("status change denied: invalid status", slog.Int("status", status))
		return models.OutcomeDenied, nil
	}

	if next == models.ToolOperational {
		level, err := e.levels.StoredLevel(ctx, card.Owner.ID, toolID)
		if err != nil {
			return models.OutcomeDenied, fmt.Errorf("%s: %w", op, err)
		}
		if level != models.LevelMaintainer {
			log.Info("status change denied: not a maintainer", slog.String("level", level.String()))
			return models.OutcomeDenied, nil
		}
	}

	rec := audit.StatusChanged(toolID, card.Owner.ID, next)
	stored, err := e.repo.SetToolStatus(ctx, toolID, next, rec.Entry)
	if err != nil {
		return notFoundOr(op, err)
	}
	e.committed(ctx, rec.Kind, stored)
	return models.OutcomeOK, nil
}

// SetInUse отмечает начало или конец сеанса работы владельца карты cardID.
// Нераспознанная отметка отклоняется после проверки инструмента и карты.
func (e *Engine) SetInUse(ctx context.Context, toolID int64, use models.ToolUse, cardID string) (models.Outcome, error) {
	const op = "toolstate.SetInUse"

	tool, card, outcome, err := e.toolAndCard(ctx, op, toolID, cardID)
	if tool == nil || card == nil {
		return outcome, err
	}

	if use == models.UseInvalid {
		e.log.Info("tool use denied: malformed status",
			slog.String("op", op), slog.Int64("tool_id", toolID))
		return models.OutcomeDenied, nil
	}

	var (
		rec audit.Record
		by  *int64
	)
	if use == models.UseStarted {
		rec = audit.AccessStarted(toolID, card.Owner.ID)
		userID := card.Owner.ID
		by = &userID
	} else {
		rec = audit.AccessFinished(toolID, card.Owner.ID)
	}

	stored, err := e.repo.SetToolInUse(ctx, toolID, by, rec.Entry)
	if err != nil {
		return notFoundOr(op, err)
	}
	e.committed(ctx, rec.Kind, stored)
	return models.OutcomeOK, nil
}

// ReportUsage сохраняет отчёт узла о сеансе длительностью duration секунд.
// Права не проверяются: узел сообщает о работе, которая уже состоялась.
func (e *Engine) ReportUsage(ctx context.Context, toolID int64, cardID string, duration int64) (models.Outcome, error) {
	const op = "toolstate.ReportUsage"

	tool, card, outcome, err := e.toolAndCard(ctx, op, toolID, cardID)
	if tool == nil || card == nil {
		return outcome, err
	}

	if duration < 0 {
		e.log.Info("usage report denied: negative duration",
			slog.String("op", op), slog.Int64("tool_id", toolID), slog.Int64("duration", duration))
		return models.OutcomeDenied, nil
	}

	usage := models.UsageRecord{ToolID: toolID, UserID: card.Owner.ID, Duration: duration}
	rec := audit.UsageReported(toolID, card.Owner.ID, duration)
	stored, err := e.repo.RecordUsage(ctx, usage, rec.Entry)
	if err != nil {
		return notFoundOr(op, err)
	}
	e.log.Debug("usage recorded", slog.String("usage", usage.String()))
	e.committed(ctx, rec.Kind, stored)
	return models.OutcomeOK, nil
}

func (e *Engine) committed(ctx context.Context, kind audit.Kind, stored models.LogEntry) {
	e.auditor.Committed(kind, stored)
	if e.notifier != nil {
		e.notifier.ToolsChanged(ctx)
	}
}

func (e *Engine) tool(ctx context.Context, op string, toolID int64) (*models.Tool, bool, error) {
	tool, err := e.repo.GetTool(ctx, toolID)
	if errors.Is(err, storage.ErrToolNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return tool, true, nil
}

// toolAndCard загружает инструмент и карту. Если чего-то нет, возвращает nil
// вместе с итогом операции: NotFound для инструмента, Denied для карты.
func (e *Engine) toolAndCard(ctx context.Context, op string, toolID int64, cardID string) (*models.Tool, *models.Card, models.Outcome, error) {
	tool, ok, err := e.tool(ctx, op, toolID)
	if err != nil {
		return nil, nil, models.OutcomeDenied, err
	}
	if !ok {
		return nil, nil, models.OutcomeNotFound, nil
	}

	card, err := e.repo.GetCard(ctx, cardID)
	if errors.Is(err, storage.ErrCardNotFound) {
		return tool, nil, models.OutcomeDenied, nil
	}
	if err != nil {
		return tool, nil, models.OutcomeDenied, fmt.Errorf("%s: %w", op, err)
	}
	return tool, card, models.OutcomeOK, nil
}

// notFoundOr обрабатывает удаление инструмента между чтением и транзакцией.
func notFoundOr(op string, err error) (models.Outcome, error) {
	if errors.Is(err, storage.ErrToolNotFound) {
		return models.OutcomeNotFound, nil
	}
	return models.OutcomeDenied, fmt.Errorf("%s: %w", op, err)
}
