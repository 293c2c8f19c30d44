// Command seed_roster loads a JSON roster file into a running API
// instance through the public client, signing up the seed account when
// it does not exist yet.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mnadhif/student-records-api/internal/models"
	"github.com/mnadhif/student-records-api/pkg/client"
	apperrors "github.com/mnadhif/student-records-api/pkg/errors"
)

type rosterFile struct {
	Students []models.Student `json:"students"`
}

func main() {
	var (
		base       string
		rosterPath string
		email      string
		password   string
		name       string
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&rosterPath, "roster", filepath.Join("scripts", "seed_roster", "roster.json"), "Path to JSON roster file")
	flag.StringVar(&email, "email", "seed@example.com", "Seed account email")
	flag.StringVar(&password, "password", "seed-password", "Seed account password")
	flag.StringVar(&name, "name", "Seed Account", "Seed account display name")
	flag.Parse()

	roster, err := loadRoster(rosterPath)
	if err != nil {
		log.Fatalf("failed to load roster: %v", err)
	}

	c, err := client.New(base)
	if err != nil {
		log.Fatalf("failed to build client: %v", err)
	}

	ctx := context.Background()
	if err := ensureAccount(ctx, c, email, password, name); err != nil {
		log.Fatalf("failed to sign in: %v", err)
	}

	created, failed := 0, 0
	for _, s := range roster {
		if _, err := c.Create(ctx, s); err != nil {
			failed++
			fmt.Printf("[FAIL] %s (%s): %v\n", s.Name, s.RegistrationNumber, err)
			continue
		}
		created++
		fmt.Printf("[OK]   %s (%s)\n", s.Name, s.RegistrationNumber)
	}

	fmt.Printf("Created: %d, Failed: %d\n", created, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func loadRoster(path string) ([]models.Student, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file rosterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Students) == 0 {
		return nil, fmt.Errorf("no students defined in %s", path)
	}
	return file.Students, nil
}

// ensureAccount signs up the seed account, tolerating an existing one,
// then signs in to establish the session cookie.
func ensureAccount(ctx context.Context, c *client.Client, email, password, name string) error {
	if err := c.Signup(ctx, models.SignupRequest{Email: email, Password: password, Name: name}); err != nil {
		if appErr := apperrors.FromError(err); appErr.Status != http.StatusUnprocessableEntity {
			return err
		}
	}

	_, err := c.Signin(ctx, models.SigninRequest{Email: email, Password: password})
	return err
}
