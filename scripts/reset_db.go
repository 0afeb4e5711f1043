package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Development helper: wipes all business data and reseeds nothing. Run with
// `go run scripts/reset_db.go` against a local database only.
func main() {
	fmt.Println("WARNING: this will delete all quotes, orders, and related data.")
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "stitch_db"))

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	// Dependency order: children first.
	tables := []string{
		"totp_verification_attempts",
		"deposit_transactions",
		"messages",
		"production_stages",
		"orders",
		"quotes",
		"products",
		"suppliers",
	}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
		if _, err := pool.Exec(ctx, "ALTER SEQUENCE "+table+"_id_seq RESTART WITH 1"); err != nil {
			log.Printf("Could not reset sequence for %s: %v", table, err)
		}
		fmt.Printf("  cleared %s\n", table)
	}

	// Keep admin accounts so the portal stays reachable.
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE role != 'admin'"); err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}
	fmt.Println("  cleared users (admins kept)")

	fmt.Println("Done.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
