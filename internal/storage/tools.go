package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/acnode-server/internal/models"
)

const toolColumns = `id, name, status, status_message, inuse, inuseby_id, secret`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTool(row rowScanner) (*models.Tool, error) {
	var (
		tool    models.Tool
		status  int
		inUseBy sql.NullInt64
		secret  sql.NullString
	)
	if err := row.Scan(&tool.ID, &tool.Name, &status, &tool.StatusMessage, &tool.InUse, &inUseBy, &secret); err != nil {
		return nil, err
	}
	tool.Status = models.ToolStatus(status)
	if inUseBy.Valid {
		id := inUseBy.Int64
		tool.InUseBy = &id
	}
	if secret.Valid {
		s := secret.String
		tool.Secret = &s
	}
	return &tool, nil
}

// GetTool возвращает инструмент по ID или ErrToolNotFound.
func (s *Storage) GetTool(ctx context.Context, id int64) (*models.Tool, error) {
	const op = "storage.GetTool"

	row := s.DB.QueryRowContext(ctx, `SELECT `+toolColumns+` FROM tools WHERE id = $1`, id)
	tool, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrToolNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tool, nil
}

// ListTools возвращает все инструменты, упорядоченные по ID.
func (s *Storage) ListTools(ctx context.Context) ([]*models.Tool, error) {
	const op = "storage.ListTools"

	rows, err := s.DB.QueryContext(ctx, `SELECT `+toolColumns+` FROM tools ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Tool
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// lockTool блокирует строку инструмента до конца транзакции.
// Переходы состояния одного инструмента применяются по очереди, побеждает последний.
func lockTool(ctx context.Context, tx *sql.Tx, id int64) error {
	var locked int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM tools WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrToolNotFound
	}
	return err
}

// SetToolStatus меняет статус инструмента и добавляет запись в журнал в одной транзакции.
// Возвращает сохранённую запись журнала.
func (s *Storage) SetToolStatus(ctx context.Context, toolID int64, status models.ToolStatus, entry models.LogEntry) (models.LogEntry, error) {
	const op = "storage.SetToolStatus"

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := lockTool(ctx, tx, toolID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE tools SET status = $1 WHERE id = $2`, int(status), toolID); err != nil {
			return err
		}
		return appendLogTx(ctx, tx, &entry)
	})
	if err != nil {
		return models.LogEntry{}, err
	}
	return entry, nil
}

// SetToolInUse отмечает инструмент занятым пользователем inUseBy (nil — свободен)
// и добавляет запись в журнал в одной транзакции.
func (s *Storage) SetToolInUse(ctx context.Context, toolID int64, inUseBy *int64, entry models.LogEntry) (models.LogEntry, error) {
	const op = "storage.SetToolInUse"

	var by sql.NullInt64
	if inUseBy != nil {
		by = sql.NullInt64{Int64: *inUseBy, Valid: true}
	}

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := lockTool(ctx, tx, toolID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tools SET inuse = $1, inuseby_id = $2 WHERE id = $3`,
			by.Valid, by, toolID); err != nil {
			return err
		}
		return appendLogTx(ctx, tx, &entry)
	})
	if err != nil {
		return models.LogEntry{}, err
	}
	return entry, nil
}
