package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// These tests cover the validation boundary, which rejects bad input before
// any store access. Conflict and happy-path registration need PostgreSQL;
// auth_integration_test.go runs those against a containerized instance.

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing name", `{"username":"alice","email":"alice@x.com","password":"pw1"}`},
		{"missing username", `{"name":"Alice","email":"alice@x.com","password":"pw1"}`},
		{"missing email", `{"name":"Alice","username":"alice","password":"pw1"}`},
		{"missing password", `{"name":"Alice","username":"alice","email":"alice@x.com"}`},
		{"username too short", `{"name":"Alice","username":"al","email":"alice@x.com","password":"pw1"}`},
		{"username bad characters", `{"name":"Alice","username":"al ice!","email":"alice@x.com","password":"pw1"}`},
		{"email without domain", `{"name":"Alice","username":"alice","email":"alice","password":"pw1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d, body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}

			var resp AuthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if resp.Success {
				t.Error("success = true on validation failure")
			}
			if resp.Message == "" {
				t.Error("validation failure has no message")
			}
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{`},
		{"missing username", `{"password":"pw1"}`},
		{"missing password", `{"username":"alice"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			Login(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
