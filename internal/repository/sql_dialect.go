package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dbDialectName returns the dialect name, defaulting to sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// lockForUpdate applies SELECT ... FOR UPDATE on engines that support it.
// SQLite has no row locks but serializes writers, so the clause is skipped.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	default:
		return db
	}
}
