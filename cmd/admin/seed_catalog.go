package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	content, err := os.ReadFile("scripts/seed_catalog.sql")
	if err != nil {
		panic(err)
	}

	_, err = db.Exec(string(content))
	if err != nil {
		panic(err)
	}

	fmt.Println("Successfully seeded catalog from scripts/seed_catalog.sql")
}
