package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Every metrics document is owned either by a specific user (user_id set) or
// by the shared placeholder pool (shared: true), never both. Placeholder
// documents are demo content returned when a user has no data of their own.

// DashboardSnapshot is the single live dashboard record per user (upserted by
// the instrumentation path), plus at most one shared placeholder document.
type DashboardSnapshot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       string             `bson:"user_id,omitempty" json:"-"`
	Shared       bool               `bson:"shared,omitempty" json:"-"`
	BurnoutScore float64            `bson:"burnout_score" json:"burnoutScore"`
	BurnoutLevel string             `bson:"burnout_level" json:"burnoutLevel"` // Low / Medium / High
	WorkHours    float64            `bson:"work_hours" json:"workHours"`
	SessionTime  float64            `bson:"session_time" json:"sessionTime"` // minutes in current session
	EyeStrain    float64            `bson:"eye_strain" json:"eyeStrain"`     // count of eye strain events
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// BurnoutLog is one point in the burnout time series.
type BurnoutLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       string             `bson:"user_id,omitempty" json:"-"`
	Shared       bool               `bson:"shared,omitempty" json:"-"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	BurnoutScore float64            `bson:"burnout_score" json:"burnoutScore"`
	BurnoutLevel string             `bson:"burnout_level" json:"burnoutLevel"`
}

// EyeStrainLog is one point in the eye-strain time series.
type EyeStrainLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID          string             `bson:"user_id,omitempty" json:"-"`
	Shared          bool               `bson:"shared,omitempty" json:"-"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
	EyeStrainStatus string             `bson:"eye_strain_status" json:"eyeStrainStatus"` // None / Mild / Severe
}

// AppUsage is one usage session of a single application. Aggregation by app
// name is a presentation concern; the API returns raw rows.
type AppUsage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       string             `bson:"user_id,omitempty" json:"-"`
	Shared       bool               `bson:"shared,omitempty" json:"-"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	AppName      string             `bson:"app_name" json:"appName"`
	UsageMinutes float64            `bson:"usage_minutes" json:"usageMinutes"`
}

// ActivityLog is one tracked activity (Coding, Meeting, Browsing, ...).
type ActivityLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID          string             `bson:"user_id,omitempty" json:"-"`
	Shared          bool               `bson:"shared,omitempty" json:"-"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
	ActivityType    string             `bson:"activity_type" json:"activityType"`
	DurationMinutes float64            `bson:"duration_minutes" json:"durationMinutes"`
}

// Recommendation is a wellness suggestion, per-user or shared.
type Recommendation struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID             string             `bson:"user_id,omitempty" json:"-"`
	Shared             bool               `bson:"shared,omitempty" json:"-"`
	Timestamp          time.Time          `bson:"timestamp" json:"timestamp"`
	RecommendationText string             `bson:"recommendation_text" json:"recommendationText"`
}
