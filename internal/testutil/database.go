package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database, expected at
// localhost:3306/barliman_test. Tests are skipped when it is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/barliman_test"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupProductTable creates and seeds the Product table used by the
// catalog repository tests.
func SetupProductTable(t *testing.T, db *sql.DB) {
	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		code VARCHAR(32) NOT NULL PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		stock INT NOT NULL
	)`

	if _, err := db.Exec(createProductTable); err != nil {
		t.Fatalf("failed to create Product table: %v", err)
	}
}

// CleanupTestDB removes test rows and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	if _, err := db.Exec("DELETE FROM Product"); err != nil {
		t.Logf("failed to clean table Product: %v", err)
	}

	db.Close()
}
