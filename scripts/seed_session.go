package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Plants a session in Redis the way the identity service would, so local
// callers can authenticate against the API without running that service.
func main() {
	fmt.Println("seeding a development session into Redis...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	addr := os.Getenv("REDIS_ADDR")
	password := os.Getenv("REDIS_PASSWORD")
	prefix := os.Getenv("SESSION_KEY_PREFIX")
	if prefix == "" {
		prefix = "session:"
	}
	token := os.Getenv("SEED_SESSION_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	email := os.Getenv("SEED_SESSION_EMAIL")
	if email == "" {
		email = "dev@example.com"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	defer rdb.Close()

	payload, err := json.Marshal(map[string]any{
		"user_id": uuid.New(),
		"email":   email,
	})
	if err != nil {
		log.Fatalf("cannot marshal session payload: %v", err)
	}

	if err := rdb.Set(context.Background(), prefix+token, payload, 24*time.Hour).Err(); err != nil {
		log.Fatalf("cannot write session: %v", err)
	}

	fmt.Printf("seeded session for '%s', use header: Authorization: Bearer %s\n", email, token)
}
