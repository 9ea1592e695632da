// Package models содержит доменные структуры сервера доступа к инструментам:
// пользователей, инструменты, карты, права доступа, записи об использовании
// и записи журнала аудита, а также закрытые перечисления статусов и уровней.
package models

import "fmt"

// User представляет участника мастерской.
// Идентификатор совпадает с номером в карточной базе и наружу отображается как "HS00042".
type User struct {
	ID         int64  // Уникальный идентификатор пользователя
	Name       string // Отображаемое имя (уникальное)
	Subscribed bool   // Оплачен ли членский взнос
}

// HSID возвращает внешний идентификатор пользователя в формате HS + номер из пяти цифр.
func (u User) HSID() string {
	if u.ID == 0 {
		return "HSXXXXX"
	}
	return fmt.Sprintf("HS%05d", u.ID)
}
