// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках.
package sl

import (
	"context"
	"log/slog"
	"strings"
)

// LevelCritical — уровень для событий, важных для безопасности
// (неверный или отсутствующий секрет узла). Выше slog.LevelError.
const LevelCritical = slog.Level(12)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Удобно использовать в логировании для единообразного вывода ошибок.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Critical пишет запись с уровнем LevelCritical.
func Critical(log *slog.Logger, msg string, args ...any) {
	log.Log(context.Background(), LevelCritical, msg, args...)
}

// ReplaceLevel подписывает LevelCritical как "CRITICAL" вместо "ERROR+4".
// Передаётся в slog.HandlerOptions.ReplaceAttr.
func ReplaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}

// ParseLevel переводит строку из конфига в уровень логирования; по умолчанию — info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
