// Package deviceauth проверяет, что запрос от узла инструмента несёт общий секрет,
// зарегистрированный для этого инструмента.
//
// Секрет обязателен только для инструментов, у которых он настроен. Неизвестный
// инструмент не отклоняется здесь: обработчик сам ответит "-1".
package deviceauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/models"
	"github.com/magabrotheeeer/acnode-server/internal/storage"
)

// Result — итог проверки секрета узла.
type Result int

const (
	// Authenticated — секрет совпал, не требуется или инструмент неизвестен.
	Authenticated Result = iota
	// Rejected — секрет настроен, но не передан или не совпал.
	Rejected
	// UnconfiguredButPresented — узел прислал секрет, которого у инструмента нет.
	// Запрос продолжается, событие пишется как предупреждение.
	UnconfiguredButPresented
)

func (r Result) String() string {
	switch r {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	case UnconfiguredButPresented:
		return "unconfigured_but_presented"
	default:
		return "unknown"
	}
}

// Allowed сообщает, можно ли передать запрос обработчику.
func (r Result) Allowed() bool {
	return r != Rejected
}

// ToolReader описывает чтение инструмента из хранилища.
type ToolReader interface {
	GetTool(ctx context.Context, id int64) (*models.Tool, error)
}

// Source — откуда пришёл запрос; нужен только для журнала безопасности.
type Source struct {
	Path       string
	RemoteAddr string
}

// Authenticator проверяет секреты узлов.
type Authenticator struct {
	tools ToolReader
	log   *slog.Logger
}

// New создает Authenticator.
func New(tools ToolReader, log *slog.Logger) *Authenticator {
	return &Authenticator{tools: tools, log: log}
}

// Authenticate сверяет presented (nil — заголовок не передан) с секретом инструмента toolID.
// Ошибка возвращается только при сбое хранилища.
func (a *Authenticator) Authenticate(ctx context.Context, toolID int64, presented *string, src Source) (Result, error) {
	const op = "deviceauth.Authenticate"

	tool, err := a.tools.GetTool(ctx, toolID)
	if errors.Is(err, storage.ErrToolNotFound) {
		return Authenticated, nil
	}
	if err != nil {
		return Rejected, err
	}

	log := a.log.With(
		slog.String("op", op),
		slog.Int64("tool_id", toolID),
		slog.String("path", src.Path),
		slog.String("remote_addr", src.RemoteAddr),
	)

	if !tool.HasSecret() {
		if presented != nil {
			log.Warn("tool sent a secret key, but none is configured for it")
			return UnconfiguredButPresented, nil
		}
		return Authenticated, nil
	}

	if presented == nil {
		sl.Critical(log, "missing secret key for tool")
		return Rejected, nil
	}
	if subtle.ConstantTimeCompare([]byte(*tool.Secret), []byte(*presented)) != 1 {
		sl.Critical(log, "wrong secret key for tool")
		return Rejected, nil
	}
	return Authenticated, nil
}
