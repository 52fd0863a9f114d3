package service

import "errors"

// Ошибки движка - закрытая таксономия, все восстановимы вызывающей стороной.
// Проверяются через errors.Is по всей цепочке обертываний.
var (
	// ErrNotFound - инцидент с указанным id не существует
	ErrNotFound = errors.New("incident not found")

	// ErrConflict - ожидаемый статус нарушен конкурентным переходом;
	// вызывающий должен перечитать текущее состояние перед повтором
	ErrConflict = errors.New("incident status changed concurrently")

	// ErrForbidden - актор не авторизован для запрошенного перехода
	ErrForbidden = errors.New("actor not allowed for this transition")

	// ErrValidation - некорректный вход (нет evidence, confidence вне диапазона и т.д.)
	ErrValidation = errors.New("invalid input")

	// ErrUnavailable - отказ внешнего коллаборатора (хранилище, кеш);
	// инцидент при этом не остается в частично примененном состоянии
	ErrUnavailable = errors.New("collaborator unavailable")
)
