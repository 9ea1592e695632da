package models

// Card — RFID-карта участника. CardID — непрозрачная строка (обычно UID в hex),
// уникальная и чувствительная к регистру. У пользователя может быть несколько карт.
type Card struct {
	ID     int64
	UserID int64
	CardID string
	Owner  User // Владелец карты, загружается вместе с картой
}
