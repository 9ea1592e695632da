package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/acnode-server/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных.
// Пользователей, инструменты и карты в рабочей системе заводит администратор.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, id int64, name string, subscribed bool) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (id, name, subscribed) VALUES ($1, $2, $3)`,
		id, name, subscribed)
	require.NoError(t, err)
}

// CreateTool создает тестовый инструмент; secret == nil означает узел без секрета
func (f *TestDataFactory) CreateTool(t *testing.T, name string, secret *string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO tools (name, status_message, secret) VALUES ($1, 'working ok', $2) RETURNING id`,
		name, secret).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateCard создает тестовую карту пользователя
func (f *TestDataFactory) CreateCard(t *testing.T, userID int64, cardID string) {
	_, err := f.storage.DB.Exec(`INSERT INTO cards (user_id, card_id) VALUES ($1, $2)`, userID, cardID)
	require.NoError(t, err)
}

// CreatePermission создает запись о правах напрямую, минуя протокол делегирования
func (f *TestDataFactory) CreatePermission(t *testing.T, userID, toolID int64, level int, addedBy int64) {
	_, err := f.storage.DB.Exec(`INSERT INTO permissions (user_id, tool_id, permission, addedby_id) VALUES ($1, $2, $3, $4)`,
		userID, toolID, level, addedBy)
	require.NoError(t, err)
}

func setupTestDB(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	st, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(st.DB, migrationsPath))

	return st
}
