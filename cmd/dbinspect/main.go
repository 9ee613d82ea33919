// Package main provides a read-only inspection tool for the AnimeX database.
//
// Usage:
//
//	DATA_PATH=~/animex go run ./cmd/dbinspect
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/animex")
	}
	dbPath := filepath.Join(dataPath, "animex.db")

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Printf("Path: %s\n\n", dbPath)

	tables := []string{
		"users", "sessions", "anime", "episodes", "likes",
		"watchlist", "watch_history", "notifications", "feedback", "comments",
	}
	for _, table := range tables {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			log.Printf("Error counting %s: %v", table, err)
			continue
		}
		fmt.Printf("%-15s %d\n", table, count)
	}

	fmt.Println("\n=== Top Anime by Views ===")
	rows, err := db.Query(`
		SELECT title_en, view_count, like_count, total_episodes
		FROM anime
		ORDER BY view_count DESC
		LIMIT 10`)
	if err != nil {
		log.Fatalf("Error querying anime: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var title string
		var views, likes int64
		var episodes int
		if err := rows.Scan(&title, &views, &likes, &episodes); err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}
		fmt.Printf("%-40s views=%d likes=%d episodes=%d\n", title, views, likes, episodes)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Error iterating anime: %v", err)
	}

	fmt.Println("\n=== Feedback by Status ===")
	statusRows, err := db.Query("SELECT status, COUNT(*) FROM feedback GROUP BY status")
	if err != nil {
		log.Fatalf("Error querying feedback: %v", err)
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var status string
		var count int
		if err := statusRows.Scan(&status, &count); err != nil {
			continue
		}
		fmt.Printf("%-10s %d\n", status, count)
	}
	if err := statusRows.Err(); err != nil {
		log.Fatalf("Error iterating feedback: %v", err)
	}
}
