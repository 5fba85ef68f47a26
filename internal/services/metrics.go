package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/digitalburnout/burnout-backend/internal/database"
	"github.com/digitalburnout/burnout-backend/internal/models"
)

// Mongo collection names for the six metrics record kinds.
const (
	ColDashboard       = "dashboard"
	ColBurnoutLogs     = "burnout_logs"
	ColEyeStrainLogs   = "eye_strain_logs"
	ColAppUsage        = "app_usage"
	ColActivityLogs    = "activity_logs"
	ColRecommendations = "recommendations"
)

// Owner identifies who a metrics query is scoped to: a specific user, or the
// shared placeholder pool when UserID is empty.
type Owner struct {
	UserID string
}

// SharedOwner scopes a query to the shared placeholder documents.
var SharedOwner = Owner{}

// UserOwner scopes a query to a specific user's documents.
func UserOwner(userID string) Owner {
	return Owner{UserID: userID}
}

func (o Owner) filter() bson.M {
	if o.UserID == "" {
		return bson.M{"shared": true}
	}
	return bson.M{"user_id": o.UserID}
}

// MetricsStore is the read surface over the metrics collections. The mongo
// implementation is the only one in production; tests substitute a fake.
type MetricsStore interface {
	FindSnapshot(ctx context.Context, owner Owner) (*models.DashboardSnapshot, error)
	FindBurnoutLogs(ctx context.Context, owner Owner, since time.Time) ([]models.BurnoutLog, error)
	FindEyeStrainLogs(ctx context.Context, owner Owner, since time.Time) ([]models.EyeStrainLog, error)
	FindAppUsage(ctx context.Context, owner Owner, since time.Time) ([]models.AppUsage, error)
	FindRecentActivity(ctx context.Context, owner Owner, limit int64) ([]models.ActivityLog, error)
	FindRecommendations(ctx context.Context, owner Owner, limit int64) ([]models.Recommendation, error)
}

// Metrics is the store used by the resolution functions. Swapped by tests.
var Metrics MetricsStore = mongoMetrics{}

type mongoMetrics struct{}

// FindSnapshot returns the single dashboard document for the owner, or nil
// when none exists (absence is not an error at this layer).
func (mongoMetrics) FindSnapshot(ctx context.Context, owner Owner) (*models.DashboardSnapshot, error) {
	var snap models.DashboardSnapshot
	err := database.DB.Collection(ColDashboard).FindOne(ctx, owner.filter()).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (mongoMetrics) FindBurnoutLogs(ctx context.Context, owner Owner, since time.Time) ([]models.BurnoutLog, error) {
	cur, err := findSeries(ctx, ColBurnoutLogs, owner, since)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := make([]models.BurnoutLog, 0)
	for cur.Next(ctx) {
		var l models.BurnoutLog
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, cur.Err()
}

func (mongoMetrics) FindEyeStrainLogs(ctx context.Context, owner Owner, since time.Time) ([]models.EyeStrainLog, error) {
	cur, err := findSeries(ctx, ColEyeStrainLogs, owner, since)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := make([]models.EyeStrainLog, 0)
	for cur.Next(ctx) {
		var l models.EyeStrainLog
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, cur.Err()
}

func (mongoMetrics) FindAppUsage(ctx context.Context, owner Owner, since time.Time) ([]models.AppUsage, error) {
	cur, err := findSeries(ctx, ColAppUsage, owner, since)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := make([]models.AppUsage, 0)
	for cur.Next(ctx) {
		var u models.AppUsage
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		rows = append(rows, u)
	}
	return rows, cur.Err()
}

// FindRecentActivity returns the most recent activity entries, newest first.
func (mongoMetrics) FindRecentActivity(ctx context.Context, owner Owner, limit int64) ([]models.ActivityLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := database.DB.Collection(ColActivityLogs).Find(ctx, owner.filter(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := make([]models.ActivityLog, 0)
	for cur.Next(ctx) {
		var l models.ActivityLog
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, cur.Err()
}

func (mongoMetrics) FindRecommendations(ctx context.Context, owner Owner, limit int64) ([]models.Recommendation, error) {
	opts := options.Find().SetLimit(limit)

	cur, err := database.DB.Collection(ColRecommendations).Find(ctx, owner.filter(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recs := make([]models.Recommendation, 0)
	for cur.Next(ctx) {
		var rec models.Recommendation
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, cur.Err()
}

// findSeries runs the shared window query for the time-series collections:
// owner scope plus timestamp >= since, ascending by timestamp.
func findSeries(ctx context.Context, collection string, owner Owner, since time.Time) (*mongo.Cursor, error) {
	filter := owner.filter()
	filter["timestamp"] = bson.M{"$gte": since.UTC()}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	return database.DB.Collection(collection).Find(ctx, filter, opts)
}

// EnsureMetricsIndexes configures indexes for the metrics collections.
// Called on startup from main after Mongo has connected.
func EnsureMetricsIndexes(ctx context.Context) error {
	// One live dashboard document per user (upsert target).
	_, err := database.DB.Collection(ColDashboard).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().
			SetName("idx_dashboard_user").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"user_id": bson.M{"$exists": true}}),
	})
	if err != nil {
		return err
	}

	// Compound (user_id, timestamp) indexes for window queries on the series.
	for _, col := range []string{ColBurnoutLogs, ColEyeStrainLogs, ColAppUsage, ColActivityLogs, ColRecommendations} {
		_, err := database.DB.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_user_timestamp"),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
