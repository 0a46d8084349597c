package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authHandler(apiKeys []string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return BearerAuthMiddleware(apiKeys)(next)
}

func doAuthRequest(handler http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestBearerAuth_DisabledWithoutKeys(t *testing.T) {
	handler := authHandler(nil)
	if rec := doAuthRequest(handler, "/api/v1/search", ""); rec.Code != http.StatusOK {
		t.Errorf("expected pass-through without keys, got %d", rec.Code)
	}
}

func TestBearerAuth_ValidToken(t *testing.T) {
	handler := authHandler([]string{"secret-key"})
	if rec := doAuthRequest(handler, "/api/v1/search", "Bearer secret-key"); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for valid key, got %d", rec.Code)
	}
}

func TestBearerAuth_Rejections(t *testing.T) {
	handler := authHandler([]string{"secret-key"})

	tests := []struct {
		name string
		auth string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic secret-key"},
		{"wrong token", "Bearer other-key"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doAuthRequest(handler, "/api/v1/search", tt.auth); rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestBearerAuth_ExemptPaths(t *testing.T) {
	handler := authHandler([]string{"secret-key"})

	for _, path := range []string{"/health", "/metrics"} {
		if rec := doAuthRequest(handler, path, ""); rec.Code != http.StatusOK {
			t.Errorf("expected %s to bypass auth, got %d", path, rec.Code)
		}
	}
}

func TestBearerAuth_EmptyKeyIgnored(t *testing.T) {
	handler := authHandler([]string{""})
	if rec := doAuthRequest(handler, "/api/v1/search", ""); rec.Code != http.StatusOK {
		t.Errorf("blank keys must not enable auth, got %d", rec.Code)
	}
}
