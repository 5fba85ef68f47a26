package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/digitalburnout/burnout-backend/internal/database"
	"github.com/digitalburnout/burnout-backend/internal/models"
)

// SeedPlaceholderData inserts the shared placeholder documents that the
// resolution fallback serves to users with no instrumentation history yet.
// Idempotence is checked per collection, so a run that died partway through
// gets repaired on the next startup instead of leaving collections empty.
func SeedPlaceholderData(ctx context.Context) error {
	now := time.Now().UTC()

	// Demo series: one entry per day for the past week so a 7-day window
	// renders a full chart.
	burnout := make([]interface{}, 0, 7)
	strain := make([]interface{}, 0, 7)
	for i := 6; i >= 0; i-- {
		ts := now.AddDate(0, 0, -i)
		score := float64(35 + 5*i)
		burnout = append(burnout, models.BurnoutLog{
			Shared:       true,
			Timestamp:    ts,
			BurnoutScore: score,
			BurnoutLevel: burnoutLevel(score),
		})
		status := "None"
		if i%3 == 1 {
			status = "Mild"
		}
		strain = append(strain, models.EyeStrainLog{
			Shared:          true,
			Timestamp:       ts,
			EyeStrainStatus: status,
		})
	}

	batches := []struct {
		col  string
		docs []interface{}
	}{
		{ColDashboard, []interface{}{models.DashboardSnapshot{
			Shared:       true,
			BurnoutScore: 50,
			BurnoutLevel: "Medium",
			WorkHours:    8,
			SessionTime:  120,
			EyeStrain:    15,
			UpdatedAt:    now,
		}}},
		{ColBurnoutLogs, burnout},
		{ColEyeStrainLogs, strain},
		{ColAppUsage, []interface{}{
			models.AppUsage{Shared: true, Timestamp: now.AddDate(0, 0, -1), AppName: "VS Code", UsageMinutes: 180},
			models.AppUsage{Shared: true, Timestamp: now.AddDate(0, 0, -1), AppName: "Chrome", UsageMinutes: 95},
			models.AppUsage{Shared: true, Timestamp: now.AddDate(0, 0, -2), AppName: "Slack", UsageMinutes: 45},
			models.AppUsage{Shared: true, Timestamp: now.AddDate(0, 0, -3), AppName: "VS Code", UsageMinutes: 150},
		}},
		{ColActivityLogs, []interface{}{
			models.ActivityLog{Shared: true, Timestamp: now.Add(-2 * time.Hour), ActivityType: "Coding", DurationMinutes: 90},
			models.ActivityLog{Shared: true, Timestamp: now.Add(-5 * time.Hour), ActivityType: "Meeting", DurationMinutes: 60},
			models.ActivityLog{Shared: true, Timestamp: now.Add(-8 * time.Hour), ActivityType: "Browsing", DurationMinutes: 30},
			models.ActivityLog{Shared: true, Timestamp: now.AddDate(0, 0, -1), ActivityType: "Coding", DurationMinutes: 120},
		}},
		{ColRecommendations, []interface{}{
			models.Recommendation{Shared: true, Timestamp: now, RecommendationText: "Take a 5 minute break every hour of screen time."},
			models.Recommendation{Shared: true, Timestamp: now, RecommendationText: "Follow the 20-20-20 rule to reduce eye strain."},
			models.Recommendation{Shared: true, Timestamp: now, RecommendationText: "Keep work sessions under 90 minutes before stepping away."},
		}},
	}

	seeded := 0
	for _, b := range batches {
		col := database.DB.Collection(b.col)
		count, err := col.CountDocuments(ctx, bson.M{"shared": true})
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := col.InsertMany(ctx, b.docs); err != nil {
			return fmt.Errorf("seeding %s: %w", b.col, err)
		}
		seeded++
	}

	if seeded == 0 {
		log.Println("Placeholder data already seeded")
	} else {
		log.Printf("✅ Shared placeholder data seeded (%d collections)", seeded)
	}
	return nil
}

// burnoutLevel maps a score to its ordinal band.
func burnoutLevel(score float64) string {
	switch {
	case score < 40:
		return "Low"
	case score < 70:
		return "Medium"
	default:
		return "High"
	}
}

// UpsertUserSnapshot writes the single live dashboard document for a user.
// The ingestion path calls this; the API surface never writes snapshots.
func UpsertUserSnapshot(ctx context.Context, snap models.DashboardSnapshot) error {
	if snap.UserID == "" {
		return fmt.Errorf("snapshot user_id is required")
	}
	snap.Shared = false
	snap.UpdatedAt = time.Now().UTC()

	_, err := database.DB.Collection(ColDashboard).ReplaceOne(
		ctx,
		bson.M{"user_id": snap.UserID},
		snap,
		options.Replace().SetUpsert(true),
	)
	return err
}
