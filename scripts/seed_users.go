package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Seeds a handful of demo identities. In production, accounts arrive from
// the external identity provider; this exists for local development only.
func main() {
	fmt.Println("seeding demo users...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	demo := []struct {
		name   string
		avatar string
	}{
		{"Ada Lovelace", "https://example.com/avatars/ada.png"},
		{"Grace Hopper", "https://example.com/avatars/grace.png"},
		{"Dennis Ritchie", "https://example.com/avatars/dennis.png"},
	}

	query := `
		INSERT INTO users (id, name, avatar)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	for _, u := range demo {
		if _, err := pool.Exec(context.Background(), query, uuid.New(), u.name, u.avatar); err != nil {
			log.Fatalf("cannot add user %q: %v", u.name, err)
		}
	}

	fmt.Printf("seeded %d demo users\n", len(demo))
}
