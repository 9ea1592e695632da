package models

import (
	"fmt"
	"strconv"
)

// ToolStatus — эксплуатационный статус инструмента.
type ToolStatus int

const (
	// ToolOutOfService — инструмент выведен из эксплуатации.
	ToolOutOfService ToolStatus = 0
	// ToolOperational — инструмент в рабочем состоянии.
	ToolOperational ToolStatus = 1
)

// ParseToolStatus преобразует число из запроса узла в ToolStatus.
func ParseToolStatus(v int) (ToolStatus, error) {
	switch ToolStatus(v) {
	case ToolOutOfService, ToolOperational:
		return ToolStatus(v), nil
	default:
		return 0, fmt.Errorf("unknown tool status %d", v)
	}
}

// String возвращает человекочитаемое название статуса, как его показывают сводки.
func (s ToolStatus) String() string {
	switch s {
	case ToolOutOfService:
		return "Out of service"
	case ToolOperational:
		return "Operational"
	default:
		return fmt.Sprintf("ToolStatus(%d)", int(s))
	}
}

// ToolUse — отметка узла о сеансе работы с инструментом.
type ToolUse int

const (
	// UseInvalid — узел прислал не число.
	UseInvalid ToolUse = iota - 1
	// UseFinished — сеанс завершён.
	UseFinished
	// UseStarted — сеанс начат.
	UseStarted
)

// ParseToolUse разбирает отметку из URL: "1" начинает сеанс, любое другое число завершает его.
func ParseToolUse(raw string) ToolUse {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return UseInvalid
	}
	if v == 1 {
		return UseStarted
	}
	return UseFinished
}

// Tool представляет инструмент, управляемый узлом контроля доступа.
//
// Инвариант: InUse == true тогда и только тогда, когда InUseBy != nil.
type Tool struct {
	ID            int64
	Name          string
	Status        ToolStatus
	StatusMessage string
	InUse         bool
	InUseBy       *int64  // Пользователь, работающий с инструментом (nil, если свободен)
	Secret        *string // Общий секрет узла (nil — узел без аутентификации)
}

// HasSecret сообщает, настроен ли для инструмента общий секрет.
func (t Tool) HasSecret() bool {
	return t.Secret != nil
}

// InUseDisplay возвращает "yes" или "no" — так флаг использования отдаётся узлам и сводкам.
func (t Tool) InUseDisplay() string {
	if t.InUse {
		return "yes"
	}
	return "no"
}
