package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/digitalburnout/burnout-backend/internal/middleware"
	"github.com/digitalburnout/burnout-backend/internal/models"
	"github.com/digitalburnout/burnout-backend/internal/services"
)

const metricsQueryTimeout = 5 * time.Second

// DashboardData returns the current dashboard snapshot for the authenticated
// user, or the shared placeholder snapshot when the user has none yet.
// The source field lets the frontend badge sample data if it wants to.
func DashboardData(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), metricsQueryTimeout)
	defer cancel()

	snap, source, err := services.ResolveSnapshot(ctx, user.UserID)
	if err != nil {
		if err == services.ErrNoSnapshot {
			respondError(w, http.StatusNotFound, "No dashboard data available")
			return
		}
		log.Printf("[DashboardData] resolve failed for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		*models.DashboardSnapshot
		Source services.Source `json:"source"`
	}{snap, source})
}

// StatsSeries returns a time-series window for one of the three chartable
// kinds: GET /api/stats/{type}/{days}, type ∈ {burnout, eyeStrain, appUsage}.
// An empty array is a valid success.
func StatsSeries(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	statType := chi.URLParam(r, "type")
	days, err := strconv.Atoi(chi.URLParam(r, "days"))
	if err != nil || days <= 0 {
		respondError(w, http.StatusBadRequest, "Days must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), metricsQueryTimeout)
	defer cancel()

	var payload interface{}
	switch statType {
	case "burnout":
		payload, _, err = services.ResolveBurnoutSeries(ctx, user.UserID, days)
	case "eyeStrain":
		payload, _, err = services.ResolveEyeStrainSeries(ctx, user.UserID, days)
	case "appUsage":
		payload, _, err = services.ResolveAppUsageSeries(ctx, user.UserID, days)
	default:
		respondError(w, http.StatusBadRequest, "Unknown stats type")
		return
	}
	if err != nil {
		log.Printf("[StatsSeries] resolve %s failed for %s: %v", statType, user.Username, err)
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// ActivityLogs returns the 10 most recent activity entries, newest first.
func ActivityLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), metricsQueryTimeout)
	defer cancel()

	logs, _, err := services.ResolveActivity(ctx, user.UserID)
	if err != nil {
		log.Printf("[ActivityLogs] resolve failed for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "Failed to load activity logs")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// Recommendations returns up to 5 wellness recommendations.
func Recommendations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), metricsQueryTimeout)
	defer cancel()

	recs, _, err := services.ResolveRecommendations(ctx, user.UserID)
	if err != nil {
		log.Printf("[Recommendations] resolve failed for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "Failed to load recommendations")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}
