package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/magabrotheeeer/acnode-server/internal/models"
)

// cardIDMaxLen — ширина столбца cards.card_id в символах.
const cardIDMaxLen = 15

// storableCardID сообщает, может ли идентификатор вообще храниться в таблице cards.
// Для остальных карта заведомо неизвестна и запрос к базе не нужен.
func storableCardID(cardID string) bool {
	return utf8.ValidString(cardID) &&
		utf8.RuneCountInString(cardID) <= cardIDMaxLen &&
		!strings.ContainsRune(cardID, 0)
}

// GetCard возвращает карту по её идентификатору вместе с владельцем или ErrCardNotFound.
// Сравнение идентификатора чувствительно к регистру.
func (s *Storage) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	const op = "storage.GetCard"

	if !storableCardID(cardID) {
		return nil, fmt.Errorf("%s: %w", op, ErrCardNotFound)
	}

	query := `SELECT c.id, c.user_id, c.card_id, u.id, u.name, u.subscribed
			  FROM cards c
			  JOIN users u ON u.id = c.user_id
			  WHERE c.card_id = $1`

	var card models.Card
	err := s.DB.QueryRowContext(ctx, query, cardID).Scan(
		&card.ID, &card.UserID, &card.CardID,
		&card.Owner.ID, &card.Owner.Name, &card.Owner.Subscribed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrCardNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &card, nil
}

// GetUser возвращает пользователя по ID или ErrUserNotFound.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"

	var user models.User
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, subscribed FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Name, &user.Subscribed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
