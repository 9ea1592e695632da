// Package delegation реализует выдачу доступа с карты на карту:
// обслуживающий инструмента прикладывает свою карту и карту нового пользователя,
// и тот получает право уровня "user".
//
// Делегирование никогда не выдаёт права обслуживающего и не понижает уже
// существующие права. Записи в журнал аудита выдача не создаёт.
package delegation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/acnode-server/internal/metrics"
	"github.com/magabrotheeeer/acnode-server/internal/models"
	"github.com/magabrotheeeer/acnode-server/internal/storage"
)

// Repository описывает доступ к хранилищу, нужный для выдачи прав.
type Repository interface {
	GetTool(ctx context.Context, id int64) (*models.Tool, error)
	GetCard(ctx context.Context, cardID string) (*models.Card, error)
	CreatePermission(ctx context.Context, perm models.Permission) (bool, error)
}

// LevelReader возвращает сохранённый уровень прав пользователя на инструмент.
type LevelReader interface {
	StoredLevel(ctx context.Context, userID, toolID int64) (models.PermissionLevel, error)
}

// Service выполняет протокол делегирования.
type Service struct {
	repo   Repository
	levels LevelReader
	log    *slog.Logger
	now    func() time.Time
}

// NewService создает Service.
func NewService(repo Repository, levels LevelReader, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		levels: levels,
		log:    log,
		now:    time.Now,
	}
}

// Grant выдаёт владельцу карты toCardID право "user" на инструмент toolID от имени владельца byCardID.
//
// Проверки идут по порядку, первая неудача завершает операцию:
// инструмент существует (иначе NotFound); обе карты существуют (иначе Denied);
// выдающий — обслуживающий инструмента; получатель подписан; выдающий подписан.
func (s *Service) Grant(ctx context.Context, toolID int64, toCardID, byCardID string) (models.Outcome, error) {
	const op = "delegation.Grant"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("tool_id", toolID),
		slog.String("to_card", toCardID),
		slog.String("by_card", byCardID),
	)

	if _, err := s.repo.GetTool(ctx, toolID); err != nil {
		if errors.Is(err, storage.ErrToolNotFound) {
			return models.OutcomeNotFound, nil
		}
		return models.OutcomeDenied, fmt.Errorf("%s: %w", op, err)
	}

	by, err := s.card(ctx, byCardID)
	if err != nil || by == nil {
		return models.OutcomeDenied, wrap(op, err)
	}
	to, err := s.card(ctx, toCardID)
	if err != nil || to == nil {
		return models.OutcomeDenied, wrap(op, err)
	}

	level, err := s.levels.StoredLevel(ctx, by.Owner.ID, toolID)
	if err != nil {
		return models.OutcomeDenied, fmt.Errorf("%s: %w", op, err)
	}
	if level != models.LevelMaintainer {
		log.Info("grant denied: granting user is not a maintainer", slog.String("level", level.String()))
		return models.OutcomeDenied, nil
	}
	if !to.Owner.Subscribed {
		log.Info("grant denied: target user is not subscribed", slog.Int64("user_id", to.Owner.ID))
		return models.OutcomeDenied, nil
	}
	if !by.Owner.Subscribed {
		log.Info("grant denied: granting user is not subscribed", slog.Int64("user_id", by.Owner.ID))
		return models.OutcomeDenied, nil
	}

	created, err := s.repo.CreatePermission(ctx, models.Permission{
		UserID:    to.Owner.ID,
		ToolID:    toolID,
		Level:     models.LevelUser,
		AddedBy:   by.Owner.ID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return models.OutcomeDenied, fmt.Errorf("%s: %w", op, err)
	}
	if created {
		metrics.GrantsCreated.Inc()
		log.Info("permission granted", slog.Int64("user_id", to.Owner.ID), slog.Int64("added_by", by.Owner.ID))
	} else {
		log.Debug("permission already exists", slog.Int64("user_id", to.Owner.ID))
	}
	return models.OutcomeOK, nil
}

// card возвращает (nil, nil), если карты нет.
func (s *Service) card(ctx context.Context, cardID string) (*models.Card, error) {
	card, err := s.repo.GetCard(ctx, cardID)
	if errors.Is(err, storage.ErrCardNotFound) {
		return nil, nil
	}
	return card, err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
