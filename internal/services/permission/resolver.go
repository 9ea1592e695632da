// Package permission вычисляет эффективный уровень доступа карты к инструменту.
//
// Подписка пользователя открывает доступ ко всем выданным правам: пока она
// не активна, эффективный уровень равен LevelNone, даже для обслуживающих.
// Сохранённая запись о правах при этом не меняется.
package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/acnode-server/internal/models"
	"github.com/magabrotheeeer/acnode-server/internal/storage"
)

// Repository описывает чтение инструментов, карт и прав из хранилища.
type Repository interface {
	GetTool(ctx context.Context, id int64) (*models.Tool, error)
	GetCard(ctx context.Context, cardID string) (*models.Card, error)
	GetPermission(ctx context.Context, userID, toolID int64) (*models.Permission, error)
}

// Resolver вычисляет уровни доступа.
type Resolver struct {
	repo Repository
}

// NewResolver создает Resolver.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve возвращает эффективный уровень доступа карты cardID к инструменту toolID.
// LevelNotFound — инструмент или карта не найдены. Ошибка — только сбой хранилища.
func (r *Resolver) Resolve(ctx context.Context, cardID string, toolID int64) (models.PermissionLevel, error) {
	const op = "permission.Resolve"

	if _, err := r.repo.GetTool(ctx, toolID); err != nil {
		if errors.Is(err, storage.ErrToolNotFound) {
			return models.LevelNotFound, nil
		}
		return models.LevelNotFound, fmt.Errorf("%s: %w", op, err)
	}

	card, err := r.repo.GetCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			return models.LevelNotFound, nil
		}
		return models.LevelNotFound, fmt.Errorf("%s: %w", op, err)
	}

	level, err := r.StoredLevel(ctx, card.Owner.ID, toolID)
	if err != nil {
		return models.LevelNone, fmt.Errorf("%s: %w", op, err)
	}
	if !card.Owner.Subscribed {
		return models.LevelNone, nil
	}
	return level, nil
}

// StoredLevel возвращает сохранённый уровень без учёта подписки: LevelNone, если записи нет.
// По нему проверяются права обслуживающего при вводе в эксплуатацию и делегировании.
func (r *Resolver) StoredLevel(ctx context.Context, userID, toolID int64) (models.PermissionLevel, error) {
	perm, err := r.repo.GetPermission(ctx, userID, toolID)
	if errors.Is(err, storage.ErrPermissionNotFound) {
		return models.LevelNone, nil
	}
	if err != nil {
		return models.LevelNone, fmt.Errorf("permission.StoredLevel: %w", err)
	}
	return perm.Level, nil
}
