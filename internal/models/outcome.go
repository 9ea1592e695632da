package models

import "strconv"

// Outcome — результат изменяющей операции протокола узла.
// Прошивка ветвится ровно по этим трём значениям.
type Outcome int

const (
	// OutcomeNotFound — инструмент неизвестен, узлу следует прекратить попытки.
	OutcomeNotFound Outcome = -1
	// OutcomeDenied — карта не найдена, прав недостаточно или нарушено бизнес-правило.
	OutcomeDenied Outcome = 0
	// OutcomeOK — операция выполнена.
	OutcomeOK Outcome = 1
)

// Text возвращает тело ответа для узла.
func (o Outcome) Text() string {
	return strconv.Itoa(int(o))
}

// String нужен для логов и меток метрик.
func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeDenied:
		return "denied"
	case OutcomeOK:
		return "ok"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}
