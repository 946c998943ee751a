package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"sweetshop/logger"

	_ "github.com/go-sql-driver/mysql"
)

// InitDB opens the shop database from the environment and verifies the
// connection. godotenv is loaded once in main before this runs.
func InitDB() (*sql.DB, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	if user == "" || pass == "" || host == "" || name == "" || port == "" {
		return nil, fmt.Errorf("missing required database environment variables")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	logger.Log.Info("[db] Connected to database")
	return db, nil
}
