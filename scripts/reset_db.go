//go:build ignore

// Dev helper: wipes all investment data and restores the seeded plan
// catalog. Run with: go run scripts/reset_db.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Truncation order respects foreign keys; investment_plans is re-seeded by
// re-running migrations, so it is wiped last.
var tables = []string{
	"audit_logs",
	"transactions",
	"investments",
	"email_verifications",
	"profiles",
	"investment_plans",
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			log.Printf("Warning: failed to truncate %s: %v", table, err)
			continue
		}
		fmt.Printf("Cleared %s\n", table)
	}

	if _, err := db.ExecContext(ctx, "DELETE FROM schema_migrations"); err != nil {
		log.Printf("Warning: failed to reset migration state: %v", err)
	}

	fmt.Println("Database reset. Restart the service to re-apply migrations and seed plans.")
}
