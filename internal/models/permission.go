package models

import (
	"fmt"
	"time"
)

// PermissionLevel — эффективный уровень доступа карты к инструменту.
// Значения совпадают с числами, которые получает прошивка узла.
type PermissionLevel int

const (
	// LevelNotFound — инструмент или карта не найдены.
	LevelNotFound PermissionLevel = -1
	// LevelNone — прав нет (или подписка пользователя не активна).
	LevelNone PermissionLevel = 0
	// LevelUser — право пользоваться инструментом.
	LevelUser PermissionLevel = 1
	// LevelMaintainer — право обслуживать инструмент и выдавать доступ другим.
	LevelMaintainer PermissionLevel = 2
)

// String возвращает название уровня в том виде, в каком его показывает сводка по пользователю.
func (l PermissionLevel) String() string {
	switch l {
	case LevelNotFound:
		return "not-found"
	case LevelNone:
		return "un-authorised"
	case LevelUser:
		return "user"
	case LevelMaintainer:
		return "maintainer"
	default:
		return fmt.Sprintf("PermissionLevel(%d)", int(l))
	}
}

// Stored сообщает, может ли уровень храниться в строке Permission.
func (l PermissionLevel) Stored() bool {
	return l == LevelUser || l == LevelMaintainer
}

// Permission — выданное пользователю право на инструмент.
// На пару (UserID, ToolID) существует не более одной записи.
type Permission struct {
	UserID    int64
	ToolID    int64
	Level     PermissionLevel
	AddedBy   int64     // Кто выдал право
	CreatedAt time.Time // Когда право выдано
}
