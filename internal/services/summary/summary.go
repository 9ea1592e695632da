// Package summary строит сводки по инструментам для внешних систем:
// общий статус всех инструментов, права конкретного пользователя и журнал инструмента.
//
// Список статусов кэшируется в redis на короткое время; движок состояний
// сбрасывает кэш после каждого успешного перехода. Чтение, начатое до фиксации
// перехода и записавшее кэш после сброса, оставляет старый список до истечения TTL.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/models"
	"github.com/magabrotheeeer/acnode-server/internal/storage"
)

const toolsStatusKey = "acnode:tools:status"

// Ограничения выборки журнала.
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 1000
)

// ToolStatus — строка сводки get_tools_status.
type ToolStatus struct {
	ID            int64  `json:"-"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
	InUse         string `json:"in_use"`
}

// toolStatusCached повторяет ToolStatus, но сохраняет ID в кэше.
type toolStatusCached struct {
	ID int64 `json:"id"`
	ToolStatus
}

// UserToolSummary — строка сводки get_tools_summary_for_user.
type UserToolSummary struct {
	ToolStatus
	Permission string `json:"permission"`
}

// LogRecord — запись журнала инструмента в выдаче API.
type LogRecord struct {
	ID       int64     `json:"id"`
	UserID   *int64    `json:"user_id"`
	Date     time.Time `json:"date"`
	Message  string    `json:"message"`
	Duration *int64    `json:"duration,omitempty"`
}

// Repository описывает чтение данных для сводок.
type Repository interface {
	GetTool(ctx context.Context, id int64) (*models.Tool, error)
	ListTools(ctx context.Context) ([]*models.Tool, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUserPermissions(ctx context.Context, userID int64) (map[int64]models.PermissionLevel, error)
	ListLogEntries(ctx context.Context, toolID int64, limit int) ([]models.LogEntry, error)
}

// Cache описывает кэш сводок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Service строит сводки. Кэш необязателен.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создает Service; cache может быть nil.
func NewService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, log: log}
}

// ToolsStatus возвращает статус всех инструментов в порядке ID.
func (s *Service) ToolsStatus(ctx context.Context) ([]ToolStatus, error) {
	const op = "summary.ToolsStatus"

	if s.cache != nil {
		var cached []toolStatusCached
		found, err := s.cache.Get(ctx, toolsStatusKey, &cached)
		if err != nil {
			s.log.Warn("summary cache read failed", slog.String("op", op), sl.Err(err))
		}
		if found {
			result := make([]ToolStatus, 0, len(cached))
			for _, c := range cached {
				c.ToolStatus.ID = c.ID
				result = append(result, c.ToolStatus)
			}
			return result, nil
		}
	}

	tools, err := s.repo.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]ToolStatus, 0, len(tools))
	cached := make([]toolStatusCached, 0, len(tools))
	for _, t := range tools {
		row := ToolStatus{
			ID:            t.ID,
			Name:          t.Name,
			Status:        t.Status.String(),
			StatusMessage: t.StatusMessage,
			InUse:         t.InUseDisplay(),
		}
		result = append(result, row)
		cached = append(cached, toolStatusCached{ID: t.ID, ToolStatus: row})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, toolsStatusKey, cached, s.ttl); err != nil {
			s.log.Warn("summary cache write failed", slog.String("op", op), sl.Err(err))
		}
	}
	return result, nil
}

// ToolsSummaryForUser дополняет статус инструментов правами пользователя userID.
// Для неизвестного пользователя все инструменты отмечены как "un-authorised".
// Подписка здесь не учитывается: сводка показывает выданные права.
func (s *Service) ToolsSummaryForUser(ctx context.Context, userID int64) ([]UserToolSummary, error) {
	const op = "summary.ToolsSummaryForUser"

	tools, err := s.ToolsStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	levels := map[int64]models.PermissionLevel{}
	if _, err := s.repo.GetUser(ctx, userID); err == nil {
		levels, err = s.repo.ListUserPermissions(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]UserToolSummary, 0, len(tools))
	for _, t := range tools {
		level, ok := levels[t.ID]
		if !ok {
			level = models.LevelNone
		}
		result = append(result, UserToolSummary{ToolStatus: t, Permission: level.String()})
	}
	return result, nil
}

// ToolLog возвращает последние limit записей журнала инструмента, от старых к новым.
// found == false, если инструмента нет.
func (s *Service) ToolLog(ctx context.Context, toolID int64, limit int) ([]LogRecord, bool, error) {
	const op = "summary.ToolLog"

	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}

	if _, err := s.repo.GetTool(ctx, toolID); err != nil {
		if errors.Is(err, storage.ErrToolNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.repo.ListLogEntries(ctx, toolID, limit)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]LogRecord, 0, len(entries))
	for _, e := range entries {
		result = append(result, LogRecord{
			ID:       e.ID,
			UserID:   e.UserID,
			Date:     e.CreatedAt,
			Message:  e.Message,
			Duration: e.Duration,
		})
	}
	return result, true, nil
}

// ToolsChanged сбрасывает кэш статусов. Вызывается после фиксации перехода состояния.
func (s *Service) ToolsChanged(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, toolsStatusKey); err != nil {
		s.log.Warn("summary cache invalidation failed", sl.Err(err))
	}
}
