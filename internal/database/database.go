package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rsnteam/telemart-golang/internal/logger"
)

// OpenDB creates and configures a MySQL connection pool for the given DSN
// and verifies the connection with a ping.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.Log.Errorw("database ping failed", "error", err)
		return nil, err
	}

	logger.Log.Infoln("Database connection pool established successfully")
	return db, nil
}
