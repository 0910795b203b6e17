// Package migrations embeds the SQL migration files applied at
// bootstrap. File naming follows golang-migrate's
// <version>_<title>.{up,down}.sql convention.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
