// Package storage реализует хранилище сущностей сервера доступа на основе PostgreSQL:
// пользователи, инструменты, карты, права, отчёты об использовании и журнал аудита.
//
// Каждое изменяющее действие протокола выполняется одной транзакцией вместе
// с его записью в журнале, поэтому сбой не может оставить изменение статуса
// без записи аудита или наоборот.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrToolNotFound — инструмент с указанным ID отсутствует.
	ErrToolNotFound = errors.New("tool not found")
	// ErrCardNotFound — карта с указанным идентификатором отсутствует.
	ErrCardNotFound = errors.New("card not found")
	// ErrUserNotFound — пользователь с указанным ID отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrPermissionNotFound — у пользователя нет записи о правах на инструмент.
	ErrPermissionNotFound = errors.New("permission not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// inTx выполняет fn в транзакции: фиксирует её при успехе и откатывает при любой ошибке.
func (s *Storage) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
