package port

import (
	"context"
	"encoding/json"
)

// FilterOp — операторы предикатов, которые понимает платформа.
type FilterOp string

const (
	OpEq    FilterOp = "eq"
	OpNeq   FilterOp = "neq"
	OpGte   FilterOp = "gte"
	OpLte   FilterOp = "lte"
	OpILike FilterOp = "ilike" // подстрока без учета регистра
	OpIn    FilterOp = "in"
)

// Filter — один предикат вида "column op value".
// Для OpIn значения передаются через Values.
type Filter struct {
	Column string
	Op     FilterOp
	Value  string
	Values []string
}

// Sort — ключ и направление сортировки.
type Sort struct {
	Column     string
	Descending bool
}

// RecordQuery — описание запроса к именованной коллекции платформы.
// Filters соединяются через AND, AnyOf — через OR (одна группа).
type RecordQuery struct {
	Collection string
	Columns    []string
	Filters    []Filter
	AnyOf      []Filter
	Sort       *Sort
	Limit      int
}

// RecordStorePort — CRUD над коллекциями платформы.
// Результаты возвращаются сырым JSON: адаптеры и use case'ы сами
// решают, в какие структуры его разбирать.
type RecordStorePort interface {
	// Select возвращает JSON-массив строк (возможно пустой).
	Select(ctx context.Context, q RecordQuery) (json.RawMessage, error)

	// SelectSingle возвращает одну строку или domain.ErrNotFound.
	SelectSingle(ctx context.Context, q RecordQuery) (json.RawMessage, error)

	// Insert вставляет строки и возвращает их сохраненное представление.
	Insert(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error)

	// Update изменяет строки по фильтрам и возвращает обновленные.
	Update(ctx context.Context, collection string, filters []Filter, patch map[string]interface{}) (json.RawMessage, error)

	// Delete удаляет строки по фильтрам.
	Delete(ctx context.Context, collection string, filters []Filter) error
}
