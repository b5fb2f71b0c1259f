package sitebuilder

import (
	"embed"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded SQL migrations. Paths are rooted at
// data/sql/migrations.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
