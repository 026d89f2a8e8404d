// Package database handles database connections and schema inspection.
//
// It wraps GORM and opens either MySQL (production) or SQLite (local runs and
// tests, via the pure Go glebarez driver) depending on Config.Driver.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects. The integrity
// feature uses it to verify the taxonomy tables.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "taxonomy_term_field_data")
package database
