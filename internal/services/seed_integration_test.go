//go:build integration

package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/digitalburnout/burnout-backend/internal/database"
	"github.com/digitalburnout/burnout-backend/internal/testinfra"
)

// setupMetricsDB starts a throwaway MongoDB container and points the
// package-level database handles at it.
func setupMetricsDB(t *testing.T) context.Context {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	uri := testinfra.StartMongo(t, ctx)

	prevClient, prevDB := database.Client, database.DB
	if err := database.Connect(uri); err != nil {
		t.Fatalf("Failed to connect to MongoDB container: %v", err)
	}
	t.Cleanup(func() {
		database.Disconnect()
		database.Client, database.DB = prevClient, prevDB
	})

	return ctx
}

func sharedCount(t *testing.T, ctx context.Context, col string) int64 {
	t.Helper()
	n, err := database.DB.Collection(col).CountDocuments(ctx, bson.M{"shared": true})
	if err != nil {
		t.Fatalf("count on %s failed: %v", col, err)
	}
	return n
}

var seedCounts = map[string]int64{
	ColDashboard:       1,
	ColBurnoutLogs:     7,
	ColEyeStrainLogs:   7,
	ColAppUsage:        4,
	ColActivityLogs:    4,
	ColRecommendations: 3,
}

func TestSeedPlaceholderData_Idempotent(t *testing.T) {
	ctx := setupMetricsDB(t)

	for run := 0; run < 2; run++ {
		if err := SeedPlaceholderData(ctx); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		for col, want := range seedCounts {
			if got := sharedCount(t, ctx, col); got != want {
				t.Errorf("run %d: %s has %d shared docs, want %d", run, col, got, want)
			}
		}
	}
}

// A seeding run that died after writing the dashboard doc must not leave the
// remaining collections empty forever: the next run fills in whatever is
// missing without duplicating what is already there.
func TestSeedPlaceholderData_RepairsPartialSeed(t *testing.T) {
	ctx := setupMetricsDB(t)

	if err := SeedPlaceholderData(ctx); err != nil {
		t.Fatalf("initial seed: %v", err)
	}

	// Wipe two collections, leaving the dashboard doc in place. With the
	// old single-key check this state was permanent.
	for _, col := range []string{ColActivityLogs, ColRecommendations} {
		if _, err := database.DB.Collection(col).DeleteMany(ctx, bson.M{"shared": true}); err != nil {
			t.Fatalf("wiping %s: %v", col, err)
		}
	}

	if err := SeedPlaceholderData(ctx); err != nil {
		t.Fatalf("repair seed: %v", err)
	}

	for col, want := range seedCounts {
		if got := sharedCount(t, ctx, col); got != want {
			t.Errorf("after repair: %s has %d shared docs, want %d", col, got, want)
		}
	}
}
