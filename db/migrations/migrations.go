package migrations

import "embed"

// FS embeds the registry schema migrations read by the iofs driver.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version main migrates to.
const Version = 1
