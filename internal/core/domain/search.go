package domain

// Варианты сортировки каталога. Любое другое значение (включая пустое)
// означает сортировку по дате создания, новые сверху.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// SearchFilters — составные предикаты поиска по каталогу.
// Каждый предикат применяется только если соответствующее поле задано.
type SearchFilters struct {
	// Location ищется как подстрока в городе ИЛИ адресе, без учета регистра.
	Location string

	// Ценовые фильтры применяются только вместе с валютой:
	// MinPrice/MaxPrice без Currency игнорируются.
	Currency string
	MinPrice *float64
	MaxPrice *float64

	MinBedrooms  *int
	MinBathrooms *int

	SortBy string
}
