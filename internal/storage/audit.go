package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/acnode-server/internal/models"
)

// appendLogTx добавляет запись журнала в транзакции tx и заполняет её ID и время.
// Обновления и удаления в журнале запрещены триггером в базе.
func appendLogTx(ctx context.Context, tx *sql.Tx, entry *models.LogEntry) error {
	var userID, duration sql.NullInt64
	if entry.UserID != nil {
		userID = sql.NullInt64{Int64: *entry.UserID, Valid: true}
	}
	if entry.Duration != nil {
		duration = sql.NullInt64{Int64: *entry.Duration, Valid: true}
	}

	query := `INSERT INTO logs (tool_id, user_id, message, time)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, date`
	return tx.QueryRowContext(ctx, query, entry.ToolID, userID, entry.Message, duration).
		Scan(&entry.ID, &entry.CreatedAt)
}

// RecordUsage сохраняет отчёт о сеансе использования и запись журнала в одной транзакции.
func (s *Storage) RecordUsage(ctx context.Context, rec models.UsageRecord, entry models.LogEntry) (models.LogEntry, error) {
	const op = "storage.RecordUsage"

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		if err := lockTool(ctx, tx, rec.ToolID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tool_use_times (tool_id, inuseby_id, duration) VALUES ($1, $2, $3)`,
			rec.ToolID, rec.UserID, rec.Duration); err != nil {
			return err
		}
		return appendLogTx(ctx, tx, &entry)
	})
	if err != nil {
		return models.LogEntry{}, err
	}
	return entry, nil
}

// ListLogEntries возвращает последние limit записей журнала инструмента в порядке создания.
func (s *Storage) ListLogEntries(ctx context.Context, toolID int64, limit int) ([]models.LogEntry, error) {
	const op = "storage.ListLogEntries"

	query := `SELECT id, tool_id, user_id, date, message, time FROM (
				  SELECT id, tool_id, user_id, date, message, time
				  FROM logs
				  WHERE tool_id = $1
				  ORDER BY id DESC
				  LIMIT $2
			  ) recent
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, toolID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.LogEntry
	for rows.Next() {
		var (
			entry            models.LogEntry
			userID, duration sql.NullInt64
		)
		if err := rows.Scan(&entry.ID, &entry.ToolID, &userID, &entry.CreatedAt, &entry.Message, &duration); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userID.Valid {
			v := userID.Int64
			entry.UserID = &v
		}
		if duration.Valid {
			v := duration.Int64
			entry.Duration = &v
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
