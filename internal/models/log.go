package models

import (
	"fmt"
	"time"
)

// UsageRecord — отчёт узла о завершённом сеансе работы с инструментом.
// Запись неизменяема после сохранения.
type UsageRecord struct {
	ToolID   int64
	UserID   int64
	Duration int64 // Длительность в секундах
}

// String форматирует запись как "инструмент used by пользователь for H:MM:SS".
func (u UsageRecord) String() string {
	d := time.Duration(u.Duration) * time.Second
	h := int64(d / time.Hour)
	m := int64(d%time.Hour) / int64(time.Minute)
	s := int64(d%time.Minute) / int64(time.Second)
	return fmt.Sprintf("tool %d used by user %d for %d:%02d:%02d", u.ToolID, u.UserID, h, m, s)
}

// LogEntry — запись журнала аудита. Журнал только дополняется:
// записи никогда не изменяются и не удаляются.
type LogEntry struct {
	ID        int64
	ToolID    int64
	UserID    *int64 // nil, если действие не связано с пользователем
	CreatedAt time.Time
	Message   string
	Duration  *int64 // Длительность сеанса для отчётов об использовании
}
