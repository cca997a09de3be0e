package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
)

func init() {
	// go-ora registers as "oracle", which sqlx does not know; named
	// bindvars are what the repositories use.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// NewSQLXOracleDB connects to Oracle through sqlx and verifies the
// connection with a ping.
func NewSQLXOracleDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	return db, nil
}
