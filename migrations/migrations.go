// Package migrations embeds the SQL schema migrations that are applied at
// application startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
