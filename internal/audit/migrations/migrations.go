// Package migrations embeds the SQL migration files applied to the audit
// trail database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
