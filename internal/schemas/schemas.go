// Package schemas встраивает JSON-схемы входящих запросов.
package schemas

import "embed"

//go:embed requests
var SchemasFS embed.FS
