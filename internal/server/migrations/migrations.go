// Package migrations embeds the goose schema migrations for every supported
// SQL dialect. Each dialect has its own directory inside Migrations.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
