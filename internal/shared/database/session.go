package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Session returns a gorm handle bound to ctx and, when tx is set, to that
// transaction so repository calls join the caller's unit of work.
func Session(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}
