package domain

import "errors"

// Сентинельные ошибки ядра. Слой REST переводит их в HTTP-статусы,
// все остальные слои просто пробрасывают их наверх через %w.
var (
	// ErrNotFound — обязательная одиночная запись не найдена в платформе.
	ErrNotFound = errors.New("record not found")

	// ErrValidation — полезная нагрузка не прошла проверку по схеме.
	ErrValidation = errors.New("validation failed")

	// ErrNoSession — нет аутентифицированной сессии.
	ErrNoSession = errors.New("no authenticated session")
)
