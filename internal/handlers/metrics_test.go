package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/digitalburnout/burnout-backend/internal/middleware"
	"github.com/digitalburnout/burnout-backend/internal/models"
	"github.com/digitalburnout/burnout-backend/internal/services"
)

// stubMetrics returns fixed records for the shared pool and nothing for any
// user, which is exactly the state of a fresh install plus a new account.
type stubMetrics struct {
	sharedSnapshot *models.DashboardSnapshot
	sharedActivity []models.ActivityLog
	sharedRecs     []models.Recommendation
	sharedBurnout  []models.BurnoutLog
}

func (s *stubMetrics) FindSnapshot(_ context.Context, owner services.Owner) (*models.DashboardSnapshot, error) {
	if owner.UserID == "" {
		return s.sharedSnapshot, nil
	}
	return nil, nil
}

func (s *stubMetrics) FindBurnoutLogs(_ context.Context, owner services.Owner, _ time.Time) ([]models.BurnoutLog, error) {
	if owner.UserID == "" {
		return s.sharedBurnout, nil
	}
	return []models.BurnoutLog{}, nil
}

func (s *stubMetrics) FindEyeStrainLogs(_ context.Context, _ services.Owner, _ time.Time) ([]models.EyeStrainLog, error) {
	return []models.EyeStrainLog{}, nil
}

func (s *stubMetrics) FindAppUsage(_ context.Context, _ services.Owner, _ time.Time) ([]models.AppUsage, error) {
	return []models.AppUsage{}, nil
}

func (s *stubMetrics) FindRecentActivity(_ context.Context, owner services.Owner, _ int64) ([]models.ActivityLog, error) {
	if owner.UserID == "" {
		return s.sharedActivity, nil
	}
	return []models.ActivityLog{}, nil
}

func (s *stubMetrics) FindRecommendations(_ context.Context, owner services.Owner, _ int64) ([]models.Recommendation, error) {
	if owner.UserID == "" {
		return s.sharedRecs, nil
	}
	return []models.Recommendation{}, nil
}

// newMetricsTestServer wires the real token service, auth gate and handlers
// around a stub store, mirroring the production route setup.
func newMetricsTestServer(t *testing.T, stub *stubMetrics) (*chi.Mux, string) {
	t.Helper()

	if err := services.ConfigureTokens("handlers-test-secret-32-chars!!!!!!", time.Hour); err != nil {
		t.Fatalf("ConfigureTokens() error = %v", err)
	}
	token, err := services.IssueToken("user-7", "alice")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	prev := services.Metrics
	services.Metrics = stub
	t.Cleanup(func() { services.Metrics = prev })

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/dashboard-data", DashboardData)
		r.Get("/api/stats/{type}/{days}", StatsSeries)
		r.Get("/api/activity", ActivityLogs)
		r.Get("/api/recommendations", Recommendations)
	})
	return r, token
}

func doAuthed(r http.Handler, token, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDashboardData_PlaceholderFallback(t *testing.T) {
	stub := &stubMetrics{
		sharedSnapshot: &models.DashboardSnapshot{
			Shared:       true,
			BurnoutScore: 50,
			BurnoutLevel: "Medium",
			WorkHours:    8,
			SessionTime:  120,
			EyeStrain:    15,
		},
	}
	r, token := newMetricsTestServer(t, stub)

	// Without a token the gate answers 401 before the handler runs.
	req := httptest.NewRequest(http.MethodGet, "/dashboard-data", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// A new user with no personal snapshot gets the shared placeholder.
	rec = doAuthed(r, token, "/dashboard-data")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		BurnoutScore float64 `json:"burnoutScore"`
		BurnoutLevel string  `json:"burnoutLevel"`
		WorkHours    float64 `json:"workHours"`
		SessionTime  float64 `json:"sessionTime"`
		EyeStrain    float64 `json:"eyeStrain"`
		Source       string  `json:"source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.BurnoutScore != 50 || body.BurnoutLevel != "Medium" {
		t.Errorf("snapshot = %+v, want the seeded placeholder values", body)
	}
	if body.Source != string(services.SourcePlaceholder) {
		t.Errorf("source = %q, want %q", body.Source, services.SourcePlaceholder)
	}
}

func TestDashboardData_NoSnapshotAnywhere(t *testing.T) {
	r, token := newMetricsTestServer(t, &stubMetrics{})

	rec := doAuthed(r, token, "/dashboard-data")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestStatsSeries_Validation(t *testing.T) {
	r, token := newMetricsTestServer(t, &stubMetrics{})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"unknown type", "/api/stats/heartRate/7", http.StatusBadRequest},
		{"zero days", "/api/stats/burnout/0", http.StatusBadRequest},
		{"negative days", "/api/stats/burnout/-3", http.StatusBadRequest},
		{"non-numeric days", "/api/stats/burnout/week", http.StatusBadRequest},
		{"valid burnout", "/api/stats/burnout/7", http.StatusOK},
		{"valid eyeStrain", "/api/stats/eyeStrain/7", http.StatusOK},
		{"valid appUsage", "/api/stats/appUsage/30", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthed(r, token, tt.path)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestStatsSeries_EmptyIsSuccess(t *testing.T) {
	r, token := newMetricsTestServer(t, &stubMetrics{})

	rec := doAuthed(r, token, "/api/stats/burnout/7")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("response is not a JSON array: %v (body %s)", err, rec.Body.String())
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}

func TestActivityAndRecommendations_Fallback(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubMetrics{
		sharedActivity: []models.ActivityLog{
			{Shared: true, Timestamp: now, ActivityType: "Coding", DurationMinutes: 90},
		},
		sharedRecs: []models.Recommendation{
			{Shared: true, Timestamp: now, RecommendationText: "Take a break."},
			{Shared: true, Timestamp: now, RecommendationText: "Drink water."},
		},
	}
	r, token := newMetricsTestServer(t, stub)

	rec := doAuthed(r, token, "/api/activity")
	if rec.Code != http.StatusOK {
		t.Fatalf("activity status = %d, want %d", rec.Code, http.StatusOK)
	}
	var activity []struct {
		ActivityType    string  `json:"activityType"`
		DurationMinutes float64 `json:"durationMinutes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &activity); err != nil {
		t.Fatalf("activity response is not JSON: %v", err)
	}
	if len(activity) != 1 || activity[0].ActivityType != "Coding" {
		t.Errorf("activity = %+v, want the shared placeholder entry", activity)
	}

	rec = doAuthed(r, token, "/api/recommendations")
	if rec.Code != http.StatusOK {
		t.Fatalf("recommendations status = %d, want %d", rec.Code, http.StatusOK)
	}
	var recs []struct {
		RecommendationText string `json:"recommendationText"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("recommendations response is not JSON: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("len(recs) = %d, want 2", len(recs))
	}
}
