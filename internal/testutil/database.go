package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Tests that call it are
// skipped when no MySQL instance named 'caissepro_test' is reachable on
// localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/caissepro_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"order_items", "orders", "products", "categories",
		"printer_configs", "ticket_customization", "users",
	}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		prenom VARCHAR(100) NOT NULL,
		nom VARCHAR(100) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'serveur',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createCategoriesTable := `
	CREATE TABLE IF NOT EXISTS categories (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		type VARCHAR(20) NOT NULL DEFAULT 'meal',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		categoryId INT,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		stock INT NOT NULL DEFAULT 0,
		available TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_category (categoryId)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		ticketNumber VARCHAR(20) NOT NULL UNIQUE,
		serveurId INT NOT NULL,
		createdById INT,
		paidBy INT,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		total DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		clientName VARCHAR(150),
		mealTime VARCHAR(50) NOT NULL,
		notes TEXT,
		paymentMethod VARCHAR(20),
		discount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		discountType VARCHAR(20),
		paidAmount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		roomNumber VARCHAR(20),
		sentToReception TINYINT(1) NOT NULL DEFAULT 0,
		receptionPrintedAt DATETIME,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_status (status),
		INDEX idx_room (roomNumber)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		productId INT,
		productName VARCHAR(255) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		price DECIMAL(10,2) NOT NULL,
		total DECIMAL(10,2) NOT NULL,
		addedById INT,
		addedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (orderId) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId),
		INDEX idx_product (productId)
	)`

	createPrinterConfigsTable := `
	CREATE TABLE IF NOT EXISTS printer_configs (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		ownerScope VARCHAR(50) NOT NULL,
		destination VARCHAR(20) NOT NULL,
		type VARCHAR(20) NOT NULL,
		name VARCHAR(150) NOT NULL,
		usbPort VARCHAR(100),
		networkIp VARCHAR(45),
		networkPort INT,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_scope_destination (ownerScope, destination)
	)`

	createTicketCustomizationTable := `
	CREATE TABLE IF NOT EXISTS ticket_customization (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		caissierId INT NOT NULL UNIQUE,
		companyName VARCHAR(150) NOT NULL,
		headerText VARCHAR(255) NOT NULL DEFAULT '',
		footerText VARCHAR(255) NOT NULL DEFAULT '',
		showDate TINYINT(1) NOT NULL DEFAULT 1,
		showTime TINYINT(1) NOT NULL DEFAULT 1,
		showServerName TINYINT(1) NOT NULL DEFAULT 1,
		fontSize VARCHAR(10) NOT NULL DEFAULT 'normal',
		paperWidth INT NOT NULL DEFAULT 80,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"users", createUsersTable},
		{"categories", createCategoriesTable},
		{"products", createProductsTable},
		{"orders", createOrdersTable},
		{"order_items", createOrderItemsTable},
		{"printer_configs", createPrinterConfigsTable},
		{"ticket_customization", createTicketCustomizationTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
