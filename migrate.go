package main

import (
	"database/sql"
	"fmt"
)

const createSweetsTableSQL = `
CREATE TABLE IF NOT EXISTS sweets (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    category VARCHAR(32) NOT NULL,
    price DECIMAL(10,2) NOT NULL,
    quantity INT NOT NULL DEFAULT 0,
    description TEXT NOT NULL,
    image_url TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);`

const createUsersTableSQL = `
CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    username VARCHAR(64) NOT NULL UNIQUE,
    email VARCHAR(255) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL,
    role VARCHAR(16) NOT NULL DEFAULT 'user',
    created_at DATETIME NOT NULL
);`

// RunMigrations executes all necessary database structure changes.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil, call InitDB first")
	}

	if _, err := db.Exec(createSweetsTableSQL); err != nil {
		return fmt.Errorf("error running sweets table migration: %w", err)
	}

	if _, err := db.Exec(createUsersTableSQL); err != nil {
		return fmt.Errorf("error running users table migration: %w", err)
	}

	return nil
}
