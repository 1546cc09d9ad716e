package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"atsbuddy/internal/config"
	"atsbuddy/internal/errors"
	"atsbuddy/internal/token"
	"atsbuddy/internal/types"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *token.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := token.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}

	client, err := NewClient(&config.APIConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, store, logger)
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}
	return client, store
}

func TestLoginDecodesEnvelopeData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"access_token":"tok123","token_type":"bearer","email":"amina@example.com"}}`))
	}))

	resp, err := client.Login(context.Background(), types.LoginRequest{
		Email:    "amina@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken != "tok123" {
		t.Errorf("Expected access token 'tok123', got '%s'", resp.AccessToken)
	}
	if resp.Email != "amina@example.com" {
		t.Errorf("Expected email to round-trip, got '%s'", resp.Email)
	}
}

func TestBearerHeaderAttachment(t *testing.T) {
	tests := []struct {
		name          string
		storedToken   string
		authenticated bool
		wantHeader    string
	}{
		{
			name:          "authenticated call with token",
			storedToken:   "tok123",
			authenticated: true,
			wantHeader:    "Bearer tok123",
		},
		{
			name:          "authenticated call without token sends nothing",
			storedToken:   "",
			authenticated: true,
			wantHeader:    "",
		},
		{
			name:          "unauthenticated call never sends the token",
			storedToken:   "tok123",
			authenticated: false,
			wantHeader:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader string
			client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("Authorization")
				_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
			}))

			if tt.storedToken != "" {
				if err := store.Set(tt.storedToken); err != nil {
					t.Fatalf("Failed to seed token: %v", err)
				}
			}

			if _, err := Do[struct{}](context.Background(), client, http.MethodGet, "/probe", nil, tt.authenticated); err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			if gotHeader != tt.wantHeader {
				t.Errorf("Expected Authorization '%s', got '%s'", tt.wantHeader, gotHeader)
			}
		})
	}
}

func TestUnauthorizedClearsStoreAndNotifiesOnce(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}))

	if err := store.Set("stale-token"); err != nil {
		t.Fatalf("Failed to seed token: %v", err)
	}

	events := 0
	client.OnUnauthorized(func() { events++ })

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("Expected session expiry error, got none")
	}
	if !errors.IsSessionExpired(err) {
		t.Errorf("Expected a session expiry error, got: %v", err)
	}
	if got := errors.StatusOf(err); got != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", got)
	}
	if store.Get() != "" {
		t.Errorf("Expected token store to be cleared after 401")
	}
	if events != 1 {
		t.Errorf("Expected exactly one unauthorized event, got %d", events)
	}

	// A second 401 is a fresh event; the already-empty store stays empty.
	if _, err := client.Me(context.Background()); err == nil {
		t.Fatal("Expected session expiry error, got none")
	}
	if events != 2 {
		t.Errorf("Expected one event per 401 response, got %d total", events)
	}
}

func TestUnauthorizedSignalIgnoresBody(t *testing.T) {
	// A 401 with a garbage body still runs the full expiry protocol.
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))

	if err := store.Set("stale-token"); err != nil {
		t.Fatalf("Failed to seed token: %v", err)
	}

	_, err := client.Me(context.Background())
	if !errors.IsSessionExpired(err) {
		t.Errorf("Expected a session expiry error, got: %v", err)
	}
	if store.Get() != "" {
		t.Errorf("Expected token store to be cleared after 401")
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "detail field preferred",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail":"resume_text too short","message":"ignored","error":"ignored"}`,
			wantMsg: "resume_text too short",
		},
		{
			name:    "message field next",
			status:  http.StatusBadRequest,
			body:    `{"message":"bad request shape","error":"ignored"}`,
			wantMsg: "bad request shape",
		},
		{
			name:    "error field last",
			status:  http.StatusInternalServerError,
			body:    `{"error":"backend exploded"}`,
			wantMsg: "backend exploded",
		},
		{
			name:    "non-string detail falls through to message",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail":[{"loc":["body","resume_text"]}],"message":"validation failed"}`,
			wantMsg: "validation failed",
		},
		{
			name:    "empty body uses fallback",
			status:  http.StatusBadGateway,
			body:    "",
			wantMsg: "request failed (status 502)",
		},
		{
			name:    "non-JSON body uses fallback",
			status:  http.StatusBadGateway,
			body:    "<html><body>502 Bad Gateway</body></html>",
			wantMsg: "request failed (status 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := Do[struct{}](context.Background(), client, http.MethodPost, "/probe", nil, false)
			if err == nil {
				t.Fatal("Expected an error, got none")
			}

			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("Expected *errors.AppError, got %T", err)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("Expected message '%s', got '%s'", tt.wantMsg, appErr.Message)
			}
			if appErr.Status != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, appErr.Status)
			}
		})
	}
}

func TestEnvelopeFailureOnSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"analysis unavailable"}`))
	}))

	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatal("Expected an error for success=false, got none")
	}
	if !strings.Contains(err.Error(), "analysis unavailable") {
		t.Errorf("Expected envelope message to surface, got: %v", err)
	}
	if errors.IsSessionExpired(err) {
		t.Errorf("A failed envelope on 200 must not read as session expiry")
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	// Nothing listens on port 1, so the transport itself fails.
	store := token.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	logger, _ := errors.New("error")
	client, err := NewClient(&config.APIConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 1 * time.Second,
	}, store, logger)
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}

	_, err = client.Health(context.Background())
	if err == nil {
		t.Fatal("Expected a transport error, got none")
	}
	if !errors.IsType(err, errors.ErrorTypeNetwork) {
		t.Errorf("Expected a network error, got: %v", err)
	}
}

func TestUploadSendsMultipartWithBearer(t *testing.T) {
	var (
		gotAuth     string
		gotField    string
		gotFilename string
		gotContent  string
	)
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Failed to parse multipart body: %v", err)
		}
		for field, headers := range r.MultipartForm.File {
			gotField = field
			gotFilename = headers[0].Filename
			f, err := headers[0].Open()
			if err != nil {
				t.Errorf("Failed to open upload part: %v", err)
				continue
			}
			buf := make([]byte, 64)
			n, _ := f.Read(buf)
			gotContent = string(buf[:n])
			_ = f.Close()
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"file_name":"resume.pdf","file_type":"pdf","extracted_text":"Amina Khalid, Engineer","character_count":22}}`))
	}))

	if err := store.Set("tok123"); err != nil {
		t.Fatalf("Failed to seed token: %v", err)
	}

	resp, err := client.ExtractText(context.Background(), "resume.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("Expected bearer header on upload, got '%s'", gotAuth)
	}
	if gotField != "file" {
		t.Errorf("Expected form field 'file', got '%s'", gotField)
	}
	if gotFilename != "resume.pdf" {
		t.Errorf("Expected filename 'resume.pdf', got '%s'", gotFilename)
	}
	if gotContent != "%PDF-1.4 fake" {
		t.Errorf("Expected file content to round-trip, got '%s'", gotContent)
	}
	if resp.ExtractedText != "Amina Khalid, Engineer" {
		t.Errorf("Expected extracted text to decode, got '%s'", resp.ExtractedText)
	}
	if resp.CharacterCount != 22 {
		t.Errorf("Expected character count 22, got %d", resp.CharacterCount)
	}
}

func TestUploadUnauthorizedRunsExpiryProtocol(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	if err := store.Set("stale-token"); err != nil {
		t.Fatalf("Failed to seed token: %v", err)
	}
	events := 0
	client.OnUnauthorized(func() { events++ })

	_, err := client.ExtractText(context.Background(), "resume.pdf", strings.NewReader("x"))
	if !errors.IsSessionExpired(err) {
		t.Errorf("Expected a session expiry error, got: %v", err)
	}
	if store.Get() != "" {
		t.Errorf("Expected token store to be cleared after 401")
	}
	if events != 1 {
		t.Errorf("Expected exactly one unauthorized event, got %d", events)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	logger, _ := errors.New("error")
	store := token.NewStore(filepath.Join(t.TempDir(), "credentials.json"))

	_, err := NewClient(&config.APIConfig{BaseURL: "   "}, store, logger)
	if err == nil {
		t.Fatal("Expected an error for empty base URL, got none")
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"data":{"message":"ok"}}`))
	}))
	defer server.Close()

	logger, _ := errors.New("error")
	store := token.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	client, err := NewClient(&config.APIConfig{
		BaseURL: server.URL + "/",
		Timeout: 5 * time.Second,
	}, store, logger)
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if gotPath != "/api/v1/health" {
		t.Errorf("Expected path '/api/v1/health', got '%s'", gotPath)
	}
}
