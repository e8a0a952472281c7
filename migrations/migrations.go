// Package migrations embebe los scripts SQL del esquema (formato golang-migrate).
package migrations

import "embed"

// FS contiene los ficheros NNNNNN_nombre.{up,down}.sql.
//
//go:embed *.sql
var FS embed.FS
