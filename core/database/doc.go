// Package database handles database connections.
//
// It wraps GORM and configures either a MySQL connection (DSN built from the
// configuration, with connect, read and write timeouts) or a SQLite database
// (a file path, or ":memory:" for tests).
//
// The database is optional: it only backs the audit journal and is not
// contacted unless database.enabled is set.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
