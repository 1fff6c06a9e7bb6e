package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/infrastructure/api"
)

const testAPIKey = "test-secret-key"

func newTestClient(t *testing.T, apiKeys ...string) *console.Client {
	t.Helper()
	tmpDir := t.TempDir()
	client, err := console.New(
		console.WithSQLite(filepath.Join(tmpDir, "test.db")),
		console.WithDataDir(tmpDir),
		console.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		console.WithAuthSecret("api-test-secret"),
		console.WithPasswordCost(bcrypt.MinCost),
		console.WithAPIKeys(apiKeys...),
	)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func systemCtx() context.Context {
	return access.WithPrincipal(context.Background(), access.System())
}

func createStaff(t *testing.T, client *console.Client, email, role string) {
	t.Helper()
	_, err := client.Staff.Create(systemCtx(), service.StaffParams{
		Email:    email,
		Name:     "Test " + role,
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
}

func login(t *testing.T, handler http.Handler, email string) string {
	t.Helper()
	body := `{"data":{"type":"session","attributes":{"email":"` + email + `","password":"password123"}}}`
	w := do(t, handler, http.MethodPost, "/api/v1/auth/login", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d; body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Attributes struct {
				Token string `json:"token"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if resp.Data.Attributes.Token == "" {
		t.Fatal("login returned no token")
	}
	return resp.Data.Attributes.Token
}

func do(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestAPIServer_Health(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, "1.2.3", nil).Handler()

	for _, path := range []string{"/health", "/healthz"} {
		w := do(t, handler, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", path, w.Code, http.StatusOK)
		}
		if !strings.Contains(w.Body.String(), `"version":"1.2.3"`) {
			t.Errorf("%s: body = %s, want version", path, w.Body.String())
		}
	}
}

func TestAPIServer_Authentication(t *testing.T) {
	client := newTestClient(t, testAPIKey)
	handler := api.NewAPIServer(client, "test", nil).Handler()
	createStaff(t, client, "admin@example.com", "admin")

	t.Run("anonymous request is unauthorized", func(t *testing.T) {
		w := do(t, handler, http.MethodGet, "/api/v1/apartments", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusUnauthorized, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/vnd.api+json" {
			t.Errorf("content type = %q", ct)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		body := `{"data":{"type":"session","attributes":{"email":"admin@example.com","password":"nope-nope"}}}`
		w := do(t, handler, http.MethodPost, "/api/v1/auth/login", body, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("bearer token authenticates", func(t *testing.T) {
		token := login(t, handler, "admin@example.com")
		w := do(t, handler, http.MethodGet, "/api/v1/auth/me", "", bearer(token))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"role":"admin"`) {
			t.Errorf("body = %s, want admin role", w.Body.String())
		}
	})

	t.Run("api key acts as system", func(t *testing.T) {
		w := do(t, handler, http.MethodGet, "/api/v1/auth/me", "", map[string]string{"X-API-KEY": testAPIKey})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"system":true`) {
			t.Errorf("body = %s, want system principal", w.Body.String())
		}
	})

	t.Run("invalid api key is unauthorized", func(t *testing.T) {
		w := do(t, handler, http.MethodGet, "/api/v1/auth/me", "", map[string]string{"X-API-KEY": "wrong"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestAPIServer_ErrorMapping(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, "test", nil).Handler()
	createStaff(t, client, "admin@example.com", "admin")
	createStaff(t, client, "manager@example.com", "manager")
	admin := bearer(login(t, handler, "admin@example.com"))
	manager := bearer(login(t, handler, "manager@example.com"))

	apartment := `{"data":{"type":"apartment","attributes":{"name":"Hanbit","address":"12 River Rd","code":"HBT"}}}`

	w := do(t, handler, http.MethodPost, "/api/v1/apartments", apartment, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create apartment: status = %d; body: %s", w.Code, w.Body.String())
	}

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
		want    int
	}{
		{"duplicate code conflicts", http.MethodPost, "/api/v1/apartments", apartment, admin, http.StatusConflict},
		{"manager cannot create", http.MethodPost, "/api/v1/apartments", apartment, manager, http.StatusForbidden},
		{"missing apartment", http.MethodGet, "/api/v1/apartments/999", "", admin, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/v1/apartments/abc", "", admin, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/v1/apartments", "", admin, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/v1/apartments", "{", admin, http.StatusBadRequest},
		{"unknown status filter", http.MethodGet, "/api/v1/residents?status=maybe", "", admin, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, handler, tt.method, tt.path, tt.body, tt.headers)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAPIServer_CorrelationHeader(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, "test", nil).Handler()

	w := do(t, handler, http.MethodGet, "/api/v1/apartments", "", map[string]string{"X-Correlation-ID": "corr-42"})

	if got := w.Header().Get("X-Correlation-ID"); got != "corr-42" {
		t.Errorf("correlation header = %q, want corr-42", got)
	}
	if !strings.Contains(w.Body.String(), `"id":"corr-42"`) {
		t.Errorf("body = %s, want error id corr-42", w.Body.String())
	}
}

func TestAPIServer_CORS(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, "test", []string{"https://console.example.com"}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/apartments", nil)
	req.Header.Set("Origin", "https://console.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://console.example.com" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/apartments", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow origin = %q, want empty for unknown origin", got)
	}
}

func TestAPIServer_LineWorkflow(t *testing.T) {
	client := newTestClient(t, testAPIKey)
	handler := api.NewAPIServer(client, "test", nil).Handler()
	key := map[string]string{"X-API-KEY": testAPIKey}

	w := do(t, handler, http.MethodPost, "/api/v1/apartments",
		`{"data":{"type":"apartment","attributes":{"name":"Hanbit","code":"HBT"}}}`, key)
	if w.Code != http.StatusCreated {
		t.Fatalf("create apartment: status = %d; body: %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode apartment: %v", err)
	}

	w = do(t, handler, http.MethodPost, "/api/v1/apartments/"+created.Data.ID+"/buildings",
		`{"data":{"type":"building","attributes":{"name":"101"}}}`, key)
	if w.Code != http.StatusCreated {
		t.Fatalf("create building: status = %d; body: %s", w.Code, w.Body.String())
	}
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode building: %v", err)
	}

	w = do(t, handler, http.MethodPost, "/api/v1/buildings/"+created.Data.ID+"/lines",
		`{"data":{"type":"line","attributes":{"text":"1~2, 3~4, nope"}}}`, key)
	if w.Code != http.StatusCreated {
		t.Fatalf("add lines: status = %d; body: %s", w.Code, w.Body.String())
	}

	var added struct {
		Data []struct {
			Attributes struct {
				Numbers []int  `json:"numbers"`
				Label   string `json:"label"`
			} `json:"attributes"`
		} `json:"data"`
		Meta struct {
			Rejected []string `json:"rejected"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(w.Body).Decode(&added); err != nil {
		t.Fatalf("decode lines: %v", err)
	}
	if len(added.Data) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(added.Data))
	}
	if added.Data[0].Attributes.Label != "1~2" || added.Data[1].Attributes.Label != "3~4" {
		t.Errorf("unexpected labels %+v", added.Data)
	}
	if len(added.Meta.Rejected) != 1 || added.Meta.Rejected[0] != "nope" {
		t.Errorf("rejected = %v, want [nope]", added.Meta.Rejected)
	}

	w = do(t, handler, http.MethodGet, "/api/v1/buildings/"+created.Data.ID+"/lines", "", key)
	if w.Code != http.StatusOK {
		t.Fatalf("list lines: status = %d; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"label":"3~4"`) {
		t.Errorf("list body = %s", w.Body.String())
	}
}

func TestAPIServer_Pagination(t *testing.T) {
	client := newTestClient(t, testAPIKey)
	handler := api.NewAPIServer(client, "test", nil).Handler()
	key := map[string]string{"X-API-KEY": testAPIKey}

	for _, code := range []string{"A1", "B2", "C3"} {
		body := `{"data":{"type":"apartment","attributes":{"name":"Apt ` + code + `","code":"` + code + `"}}}`
		if w := do(t, handler, http.MethodPost, "/api/v1/apartments", body, key); w.Code != http.StatusCreated {
			t.Fatalf("create %s: status = %d; body: %s", code, w.Code, w.Body.String())
		}
	}

	w := do(t, handler, http.MethodGet, "/api/v1/apartments?page=2&page_size=2", "", key)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			Attributes struct {
				Code string `json:"code"`
			} `json:"attributes"`
		} `json:"data"`
		Meta struct {
			TotalCount int `json:"total_count"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
		Links struct {
			Prev string `json:"prev"`
			Next string `json:"next"`
		} `json:"links"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Attributes.Code != "C3" {
		t.Errorf("unexpected page %+v", resp.Data)
	}
	if resp.Meta.TotalCount != 3 || resp.Meta.TotalPages != 2 {
		t.Errorf("meta = %+v", resp.Meta)
	}
	if resp.Links.Prev == "" {
		t.Error("expected prev link")
	}
	if resp.Links.Next != "" {
		t.Errorf("expected no next link, got %s", resp.Links.Next)
	}
}

func TestAPIServer_CustomRouter(t *testing.T) {
	client := newTestClient(t)
	apiServer := api.NewAPIServer(client, "test", nil)
	router := apiServer.Router()

	var called bool
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	})
	apiServer.MountRoutes()

	w := do(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !called {
		t.Error("custom middleware was not called")
	}
}
