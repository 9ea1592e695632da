package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/acnode-server/internal/models"
)

// GetPermission возвращает запись о правах пользователя на инструмент или ErrPermissionNotFound.
func (s *Storage) GetPermission(ctx context.Context, userID, toolID int64) (*models.Permission, error) {
	const op = "storage.GetPermission"

	query := `SELECT user_id, tool_id, permission, addedby_id, date
			  FROM permissions
			  WHERE user_id = $1 AND tool_id = $2`

	var (
		perm  models.Permission
		level int
	)
	err := s.DB.QueryRowContext(ctx, query, userID, toolID).
		Scan(&perm.UserID, &perm.ToolID, &level, &perm.AddedBy, &perm.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	perm.Level = models.PermissionLevel(level)
	return &perm, nil
}

// CreatePermission добавляет запись о правах, если для пары (пользователь, инструмент)
// её ещё нет. Возвращает true, если запись создана, и false, если она уже существовала.
// Уникальность обеспечивается ограничением в базе, поэтому одновременные вызовы
// не создают дубликатов: второй увидит первую запись.
func (s *Storage) CreatePermission(ctx context.Context, perm models.Permission) (bool, error) {
	const op = "storage.CreatePermission"

	if !perm.Level.Stored() {
		return false, fmt.Errorf("%s: level %s cannot be stored", op, perm.Level)
	}

	query := `INSERT INTO permissions (user_id, tool_id, permission, addedby_id, date)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_id, tool_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query,
		perm.UserID, perm.ToolID, int(perm.Level), perm.AddedBy, perm.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

// ListUserPermissions возвращает уровни прав пользователя по ID инструмента.
func (s *Storage) ListUserPermissions(ctx context.Context, userID int64) (map[int64]models.PermissionLevel, error) {
	const op = "storage.ListUserPermissions"

	rows, err := s.DB.QueryContext(ctx, `SELECT tool_id, permission FROM permissions WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[int64]models.PermissionLevel)
	for rows.Next() {
		var toolID int64
		var level int
		if err := rows.Scan(&toolID, &level); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[toolID] = models.PermissionLevel(level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
