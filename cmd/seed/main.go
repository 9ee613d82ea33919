// Package main provides a tool to seed the database with an admin account
// and a small sample catalog for local development.
//
// Usage:
//
//	DATA_PATH=~/animex go run ./cmd/seed
//	go run ./cmd/seed --admin-email admin@animex.lk --admin-password changeme
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/animexapp/animex-server/internal/auth"
	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/id"
	"github.com/animexapp/animex-server/internal/store"
	"github.com/animexapp/animex-server/internal/store/sqlite"
)

var (
	adminEmail    = flag.String("admin-email", "admin@animex.lk", "Root admin email")
	adminPassword = flag.String("admin-password", "", "Root admin password (required for a fresh database)")
	skipCatalog   = flag.Bool("skip-catalog", false, "Only create the admin account, skip sample anime")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/animex")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "animex.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if err := seedAdmin(ctx, s); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if !*skipCatalog {
		if err := seedCatalog(ctx, s); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	fmt.Println("\nDone.")
}

func seedAdmin(ctx context.Context, s *sqlite.Store) error {
	existing, err := s.GetUserByEmail(ctx, *adminEmail)
	if err == nil {
		if !existing.IsAdmin {
			existing.IsAdmin = true
			if err := s.UpdateUser(ctx, existing); err != nil {
				return err
			}
			fmt.Printf("Promoted existing user %s to admin\n", *adminEmail)
			return nil
		}
		fmt.Printf("Admin %s already exists, skipping\n", *adminEmail)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if *adminPassword == "" {
		return errors.New("--admin-password is required when creating the admin account")
	}

	hash, err := auth.HashPassword(*adminPassword)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:           id.MustGenerate("user"),
		Email:        *adminEmail,
		Username:     "admin",
		IsAdmin:      true,
		Status:       domain.UserStatusActive,
		PasswordHash: hash,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return err
	}

	fmt.Printf("Created admin account: %s\n", *adminEmail)
	return nil
}

func seedCatalog(ctx context.Context, s *sqlite.Store) error {
	type sample struct {
		anime    *domain.Anime
		episodes int
	}

	samples := []sample{
		{
			anime: &domain.Anime{
				Slug:        "shadow-blade-chronicles",
				TitleEN:     "Shadow Blade Chronicles",
				Description: "A wandering swordsman hunts the cult that burned his village.",
				Genres:      []string{"action", "adventure"},
				Tags:        []string{"swordplay", "revenge"},
				AgeRating:   "PG-13",
				ReleaseYear: 2024,
				Status:      domain.AnimeStatusOngoing,
				IsTrending:  true,
			},
			episodes: 4,
		},
		{
			anime: &domain.Anime{
				Slug:        "starlight-bakery",
				TitleEN:     "Starlight Bakery",
				Description: "Two rival pastry chefs inherit the same bakery.",
				Genres:      []string{"comedy", "slice_of_life"},
				Tags:        []string{"cooking"},
				AgeRating:   "G",
				ReleaseYear: 2023,
				Status:      domain.AnimeStatusCompleted,
				IsFeatured:  true,
			},
			episodes: 3,
		},
		{
			anime: &domain.Anime{
				Slug:        "neon-circuit",
				TitleEN:     "Neon Circuit",
				Description: "Underground mecha races in a flooded megacity.",
				Genres:      []string{"sci_fi", "action"},
				Tags:        []string{"mecha", "racing"},
				AgeRating:   "PG-13",
				ReleaseYear: 2025,
				Status:      domain.AnimeStatusOngoing,
				IsFeatured:  true,
				IsTrending:  true,
			},
			episodes: 2,
		},
	}

	for _, sm := range samples {
		if _, err := s.GetAnimeBySlug(ctx, sm.anime.Slug); err == nil {
			fmt.Printf("Anime %q already exists, skipping\n", sm.anime.Slug)
			continue
		}

		sm.anime.ID = id.MustGenerate("anime")
		if err := s.CreateAnime(ctx, sm.anime); err != nil {
			return fmt.Errorf("create anime %q: %w", sm.anime.Slug, err)
		}

		for n := 1; n <= sm.episodes; n++ {
			ep := &domain.Episode{
				ID:              id.MustGenerate("ep"),
				AnimeID:         sm.anime.ID,
				EpisodeNumber:   n,
				SeasonNumber:    1,
				Title:           fmt.Sprintf("Episode %d", n),
				VideoURL:        fmt.Sprintf("https://cdn.animex.lk/%s/ep%d/master.m3u8", sm.anime.Slug, n),
				DurationSeconds: 24 * 60,
				IsFree:          n == 1,
			}
			if err := s.CreateEpisode(ctx, ep); err != nil {
				return fmt.Errorf("create episode %d of %q: %w", n, sm.anime.Slug, err)
			}
		}

		if err := s.SetAnimeTotalEpisodes(ctx, sm.anime.ID, sm.episodes); err != nil {
			return err
		}

		fmt.Printf("Created %q with %d episodes\n", sm.anime.Slug, sm.episodes)
	}

	return nil
}
