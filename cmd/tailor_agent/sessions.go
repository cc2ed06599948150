package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent tailoring sessions",
	Long:  "Lists recent tailoring sessions from the PostgreSQL session store, newest first. Requires DATABASE_URL or --db-url.",
	RunE:  runSessions,
}

var (
	sessionsDatabaseURL string
	sessionsLimit       int
)

func init() {
	sessionsCmd.Flags().StringVar(&sessionsDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Maximum number of sessions to list")

	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	databaseURL := sessionsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	ctx := context.Background()
	store, err := session.ConnectPg(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	sessions, err := store.List(ctx, sessionsLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	for _, sess := range sessions {
		line := fmt.Sprintf("%s  %-10s  %s", sess.ID, sess.Status, sess.CreatedAt.Format("2006-01-02 15:04:05"))
		if sess.Error != "" {
			line += "  " + sess.Error
		}
		fmt.Println(line)
	}
	return nil
}
