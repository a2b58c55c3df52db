// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The sqlite driver is supported
// for local runs and tests.
//
// # Connect
//
// The Connect function establishes a connection to the database. Connection
// establishment is agnostic to the stream table layout; the schema inspector
// is what verifies the table shape before a fixup run touches it.
//
// # Schema Inspection
//
// GetTableColumns retrieves the column definitions of a table so callers can
// fail fast with a clear error when a required column is missing, instead of
// surfacing a mid-pass SQL error.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "streams")
package database
