package port

import (
	"context"
	"encoding/json"
)

// FunctionInvokerPort — вызов именованных серверных функций платформы
// (отправка писем и т.п.).
type FunctionInvokerPort interface {
	Invoke(ctx context.Context, name string, payload interface{}) (json.RawMessage, error)
}
