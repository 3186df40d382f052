package constants

import "listing-service/internal/core/port"

// Семантические ключи кэша. Мост инвалидации и use case'ы обязаны
// строить ключи только через эти функции, чтобы не разъехаться.

func PropertiesListKey() port.CacheKey {
	return port.CacheKey{"properties", "list"}
}

func FeaturedPropertiesKey() port.CacheKey {
	return port.CacheKey{"properties", "featured"}
}

func PropertiesByCategoryKey(category string) port.CacheKey {
	return port.CacheKey{"properties", category}
}

// PropertiesPrefix покрывает все списочные ключи каталога.
func PropertiesPrefix() port.CacheKey {
	return port.CacheKey{"properties"}
}

func PropertyKey(id string) port.CacheKey {
	return port.CacheKey{"property", id}
}

func CompanyProfileKey() port.CacheKey {
	return port.CacheKey{"company_profile"}
}

func TeamMembersKey() port.CacheKey {
	return port.CacheKey{"team_members"}
}
