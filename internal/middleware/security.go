package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/digitalburnout/burnout-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Credential-endpoint rate limiting (per-IP, 1 attempt/2s, burst 5) ---

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	loginEntries   = make(map[string]*limiterEntry)
	loginEntriesMu sync.Mutex
)

func loginLimiter(ip string) *rate.Limiter {
	loginEntriesMu.Lock()
	defer loginEntriesMu.Unlock()

	entry, ok := loginEntries[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(2*time.Second), 5)}
		loginEntries[ip] = entry
	}
	entry.lastSeen = time.Now()

	// Opportunistic cleanup of entries idle for over an hour.
	if len(loginEntries) > 1000 {
		cutoff := time.Now().Add(-1 * time.Hour)
		for k, v := range loginEntries {
			if v.lastSeen.Before(cutoff) {
				delete(loginEntries, k)
			}
		}
	}

	return entry.limiter
}

// LoginRateLimit throttles credential endpoints (login/register) per IP to
// slow down brute forcing, independent of the Redis-backed global limiter.
func LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !loginLimiter(clientip.RealClientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many attempts. Please wait a moment and try again."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
