// Package migration applies versioned SQL schema changes to a SQLite database.
//
// Migrations are read from an fs.FS, normally an embedded directory, and must
// follow the naming convention {version}_{description}.sql (for example
// "001_initial_schema.sql"). Versions are applied in ascending order, each in
// its own transaction, and recorded in a schema_migrations table so a version
// is never applied twice.
//
// Example usage:
//
//	manager := NewManager(NewScanner(migrationsFS, "migrations"), NewExecutor(db), logger)
//	if err := manager.Run(ctx); err != nil {
//		return fmt.Errorf("migrate: %w", err)
//	}
package migration
