// Package migrations embeds the server-side schema migrations applied with
// goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
