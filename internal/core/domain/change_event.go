package domain

// ChangeAction — тип мутации из ленты изменений платформы.
type ChangeAction string

const (
	ChangeInsert ChangeAction = "INSERT"
	ChangeUpdate ChangeAction = "UPDATE"
	ChangeDelete ChangeAction = "DELETE"
)

// ChangeEvent — одно уведомление ленты изменений: старая и новая
// версии строки в сыром виде, как их отдает платформа.
type ChangeEvent struct {
	Collection string
	Action     ChangeAction
	Old        map[string]interface{}
	New        map[string]interface{}
}

// Field достает строковое поле из новой версии строки, а для DELETE —
// из старой. Возвращает пустую строку, если поля нет.
func (e ChangeEvent) Field(name string) string {
	row := e.New
	if len(row) == 0 {
		row = e.Old
	}
	if v, ok := row[name].(string); ok {
		return v
	}
	return ""
}

// RecordID — идентификатор затронутой записи, если он есть в payload.
func (e ChangeEvent) RecordID() string {
	return e.Field("id")
}
