package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/yumeno/gachapon-api/pkg/database"
	"gorm.io/gorm"
)

func main() {
	fmt.Println("=== PostgreSQL Database Connectivity Check ===")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		// Continue as .env might not exist in production
	}

	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("❌ DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	fmt.Printf("📡 Connecting to database...\n")

	// Test database connection
	db, err := database.NewGormDB(databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	// Get underlying SQL DB for connection testing
	sqlDB, err := db.DB()
	if err != nil {
		fmt.Printf("❌ Failed to get underlying database connection: %v\n", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	fmt.Println("✅ Database connection established")

	// Test database ping
	fmt.Printf("🏓 Testing database ping...\n")
	if err := sqlDB.Ping(); err != nil {
		fmt.Printf("❌ Database ping failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Database ping successful")

	// Check database version
	fmt.Printf("🔍 Checking PostgreSQL version...\n")
	var version string
	if err := db.Raw("SELECT version()").Scan(&version).Error; err != nil {
		fmt.Printf("❌ Failed to get database version: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ PostgreSQL version: %s\n", version)

	// Check if uuid-ossp extension exists
	fmt.Printf("🔧 Checking uuid-ossp extension...\n")
	var extensionExists bool
	if err := db.Raw("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'uuid-ossp')").Scan(&extensionExists).Error; err != nil {
		fmt.Printf("❌ Failed to check uuid-ossp extension: %v\n", err)
		os.Exit(1)
	}

	if extensionExists {
		fmt.Println("✅ uuid-ossp extension is available")
	} else {
		fmt.Println("⚠️  uuid-ossp extension not found - will be created during migration")
	}

	// Test basic table operations (if tables exist)
	fmt.Printf("🗃️  Checking existing tables...\n")
	if err := checkExistingTables(db); err != nil {
		fmt.Printf("⚠️  Table check warning: %v\n", err)
	}

	// Test transaction capability
	fmt.Printf("🔄 Testing transaction capability...\n")
	if err := testTransactionCapability(db); err != nil {
		fmt.Printf("❌ Transaction test failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Transaction capability verified")

	// Performance test - simple query timing
	fmt.Printf("⚡ Running performance test...\n")
	start := time.Now()
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("❌ Performance test failed: %v\n", err)
		os.Exit(1)
	}
	duration := time.Since(start)

	fmt.Printf("✅ Simple query completed in %v\n", duration)

	if duration > 5*time.Second {
		fmt.Println("⚠️  Query took longer than 5 seconds - check network latency")
	}

	fmt.Println("\n=== Database Connectivity Check Complete ===")
	fmt.Println("✅ PostgreSQL database is accessible and ready for use")
}

// checkExistingTables checks if the expected tables exist and are accessible
func checkExistingTables(db *gorm.DB) error {
	expectedTables := []string{
		"users",
		"gachas",
		"gacha_items",
		"gacha_rolls",
		"error_logs",
	}

	var existingTables []string
	if err := db.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
	`).Scan(&existingTables).Error; err != nil {
		return err
	}

	existing := make(map[string]bool, len(existingTables))
	for _, table := range existingTables {
		existing[table] = true
	}

	for _, table := range expectedTables {
		if existing[table] {
			var count int64
			if err := db.Table(table).Count(&count).Error; err != nil {
				fmt.Printf("   ⚠️  Table %s exists but is not readable: %v\n", table, err)
				continue
			}
			fmt.Printf("   ✅ Table %s exists (%d rows)\n", table, count)
		} else {
			fmt.Printf("   ⚠️  Table %s not found - run the migration first\n", table)
		}
	}

	return nil
}

// testTransactionCapability verifies begin/rollback works against the server
func testTransactionCapability(db *gorm.DB) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var result int
	if err := tx.Raw("SELECT 1").Scan(&result).Error; err != nil {
		tx.Rollback()
		return err
	}

	// roll back on purpose, nothing should be written
	return tx.Rollback().Error
}
