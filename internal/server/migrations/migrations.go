// Package migrations embeds the goose SQL migrations applied at server
// startup when a postgres store is configured.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
