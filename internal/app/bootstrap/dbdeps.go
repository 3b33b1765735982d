// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"database/sql"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	// DB is the SQLite content database shared by every feature.
	DB *sql.DB
}
