package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"resto-erp-ws/internal/config"
	"resto-erp-ws/internal/repository"
	"resto-erp-ws/pkg/database"
	"resto-erp-ws/pkg/jwt"
)

// issue-token prints a bearer token for an existing user. There is no
// password login; operators mint tokens with this command.
func main() {
	email := flag.String("email", "admin@resto.local", "email of the user to issue a token for")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_TTL_HOURS)")
	flag.Parse()

	// 1. Load config
	cfg := config.Load()
	if *ttl > 0 {
		cfg.JWT.TTL = *ttl
	}

	// 2. Setup Database
	dsn, err := cfg.Database.DSN()
	if err != nil {
		log.Fatalf("Cannot issue token: %v", err)
	}
	db, err := database.ConnectDB(dsn)
	if err != nil {
		log.Fatalf("Cannot issue token: %v", err)
	}

	// 3. Find user
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	users := repository.NewRepositories(db).Users
	user, err := users.FindBy(ctx, "email", strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		log.Fatalf("User %s not found: %v", *email, err)
	}

	// 4. Sign
	token, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL).
		GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	log.Printf("Token for %s (%s), valid for %s", user.Email, user.Role, cfg.JWT.TTL)
	fmt.Println(token)
}
