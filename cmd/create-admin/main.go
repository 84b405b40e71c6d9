package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/database"
	"github.com/brightforge/agency-backend/internal/logger"
	"github.com/brightforge/agency-backend/internal/repository"
	"github.com/brightforge/agency-backend/internal/service"
)

const minPasswordLength = 8

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	// Sessions are not issued here, so no session store is needed.
	authService := service.NewAuthService(cfg, repository.NewAdminUserRepository(pool), nil, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		fmt.Println("Error: Username must be at least 3 characters")
		os.Exit(1)
	}

	password, err := readPassword(reader, "Enter Password: ")
	if err != nil {
		fmt.Println("Error reading password:", err)
		os.Exit(1)
	}
	if len(password) < minPasswordLength {
		fmt.Printf("Error: Password must be at least %d characters\n", minPasswordLength)
		os.Exit(1)
	}
	confirm, err := readPassword(reader, "Confirm Password: ")
	if err != nil || confirm != password {
		fmt.Println("Error: Passwords do not match")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := authService.CreateAdmin(ctx, username, password)
	if errors.Is(err, service.ErrUsernameTaken) {
		fmt.Printf("Error: Admin '%s' already exists\n", username)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' created with ID: %d\n", user.Username, user.ID)
}

// readPassword prompts without echo when stdin is a terminal and falls back
// to a plain line read for piped input.
func readPassword(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	b, err := term.ReadPassword(fd)
	fmt.Println() // Newline after password input
	return string(b), err
}
