package services

import (
	"context"
	"errors"
	"time"

	"github.com/digitalburnout/burnout-backend/internal/models"
)

// The product must render a populated dashboard even for a brand-new user
// with no instrumentation history, so every read resolves owner-first and
// degrades to the shared placeholder documents seeded at startup. A response
// never mixes the two: placeholder rows are consulted only when the user's
// own set is empty.

// ErrNoSnapshot is returned when neither a user snapshot nor the shared
// placeholder snapshot exists.
var ErrNoSnapshot = errors.New("no dashboard snapshot available")

// Source says which pool a resolved result came from, so callers can mark
// demo content if the UI ever grows a "sample data" badge.
type Source string

const (
	SourceUser        Source = "user"
	SourcePlaceholder Source = "placeholder"
)

// Record limits for the non-windowed reads.
const (
	ActivityLimit       = 10
	RecommendationLimit = 5
)

// ResolveSnapshot returns the user's current dashboard snapshot, falling back
// to the shared placeholder snapshot.
func ResolveSnapshot(ctx context.Context, userID string) (*models.DashboardSnapshot, Source, error) {
	snap, err := Metrics.FindSnapshot(ctx, UserOwner(userID))
	if err != nil {
		return nil, "", err
	}
	if snap != nil {
		return snap, SourceUser, nil
	}

	snap, err = Metrics.FindSnapshot(ctx, SharedOwner)
	if err != nil {
		return nil, "", err
	}
	if snap == nil {
		return nil, "", ErrNoSnapshot
	}
	return snap, SourcePlaceholder, nil
}

// ResolveBurnoutSeries returns burnout log entries within the last `days`
// days, owner-first. An empty result after both lookups is a valid success.
func ResolveBurnoutSeries(ctx context.Context, userID string, days int) ([]models.BurnoutLog, Source, error) {
	return resolveSeries(ctx, userID, windowStart(days), Metrics.FindBurnoutLogs)
}

// ResolveEyeStrainSeries returns eye-strain log entries within the window.
func ResolveEyeStrainSeries(ctx context.Context, userID string, days int) ([]models.EyeStrainLog, Source, error) {
	return resolveSeries(ctx, userID, windowStart(days), Metrics.FindEyeStrainLogs)
}

// ResolveAppUsageSeries returns raw per-session app usage rows within the
// window. Aggregation by app name belongs to the presentation layer.
func ResolveAppUsageSeries(ctx context.Context, userID string, days int) ([]models.AppUsage, Source, error) {
	return resolveSeries(ctx, userID, windowStart(days), Metrics.FindAppUsage)
}

// ResolveActivity returns the user's most recent activity entries (newest
// first, at most ActivityLimit), falling back to placeholder entries under
// the same ordering and limit.
func ResolveActivity(ctx context.Context, userID string) ([]models.ActivityLog, Source, error) {
	logs, err := Metrics.FindRecentActivity(ctx, UserOwner(userID), ActivityLimit)
	if err != nil {
		return nil, "", err
	}
	if len(logs) > 0 {
		return logs, SourceUser, nil
	}

	logs, err = Metrics.FindRecentActivity(ctx, SharedOwner, ActivityLimit)
	if err != nil {
		return nil, "", err
	}
	return logs, SourcePlaceholder, nil
}

// ResolveRecommendations returns up to RecommendationLimit recommendations
// for the user, falling back to the shared pool.
func ResolveRecommendations(ctx context.Context, userID string) ([]models.Recommendation, Source, error) {
	recs, err := Metrics.FindRecommendations(ctx, UserOwner(userID), RecommendationLimit)
	if err != nil {
		return nil, "", err
	}
	if len(recs) > 0 {
		return recs, SourceUser, nil
	}

	recs, err = Metrics.FindRecommendations(ctx, SharedOwner, RecommendationLimit)
	if err != nil {
		return nil, "", err
	}
	return recs, SourcePlaceholder, nil
}

func resolveSeries[T any](
	ctx context.Context,
	userID string,
	since time.Time,
	find func(context.Context, Owner, time.Time) ([]T, error),
) ([]T, Source, error) {
	rows, err := find(ctx, UserOwner(userID), since)
	if err != nil {
		return nil, "", err
	}
	if len(rows) > 0 {
		return rows, SourceUser, nil
	}

	rows, err = find(ctx, SharedOwner, since)
	if err != nil {
		return nil, "", err
	}
	return rows, SourcePlaceholder, nil
}

func windowStart(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
