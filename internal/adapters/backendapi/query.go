package backendapi

import (
	"net/url"
	"strconv"
	"strings"

	"listing-service/internal/core/port"
)

// Кодирование RecordQuery в строку запроса REST-слоя платформы.
// Предикат кладется в параметр с именем колонки: "price=gte.1000".

// filterValue переводит значение предиката в нотацию платформы.
// Подстановочный знак подстроки у платформы — '*', не '%'.
func filterValue(f port.Filter) string {
	switch f.Op {
	case port.OpIn:
		return "in.(" + strings.Join(f.Values, ",") + ")"
	case port.OpILike:
		return "ilike." + strings.ReplaceAll(f.Value, "%", "*")
	default:
		return string(f.Op) + "." + f.Value
	}
}

func encodeQuery(q port.RecordQuery) string {
	params := url.Values{}

	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	}
	for _, f := range q.Filters {
		params.Add(f.Column, filterValue(f))
	}
	if len(q.AnyOf) > 0 {
		group := make([]string, len(q.AnyOf))
		for i, f := range q.AnyOf {
			group[i] = f.Column + "." + filterValue(f)
		}
		params.Set("or", "("+strings.Join(group, ",")+")")
	}
	if q.Sort != nil {
		direction := "asc"
		if q.Sort.Descending {
			direction = "desc"
		}
		params.Set("order", q.Sort.Column+"."+direction)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	return params.Encode()
}

func encodeFilters(filters []port.Filter) string {
	params := url.Values{}
	for _, f := range filters {
		params.Add(f.Column, filterValue(f))
	}
	return params.Encode()
}
