package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func serve(t *testing.T, handler *Handler, path string) map[string]any {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestRootReportsServiceModes(t *testing.T) {
	body := serve(t, NewHandler(false, false), "/")
	if body["success"] != true || body["status"] != "active" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["database"] != "in-memory" || body["ai_service"] != "mock" {
		t.Fatalf("expected fallback modes, got %v", body)
	}

	connected := serve(t, NewHandler(true, true), "/")
	if connected["database"] != "connected" || connected["ai_service"] != "available" {
		t.Fatalf("expected live modes, got %v", connected)
	}
}

func TestHealthNestsServiceModes(t *testing.T) {
	body := serve(t, NewHandler(true, false), "/health")
	if body["status"] != "healthy" {
		t.Fatalf("unexpected body: %v", body)
	}
	services, ok := body["services"].(map[string]any)
	if !ok {
		t.Fatalf("expected services object, got %v", body["services"])
	}
	if services["database"] != "connected" || services["ai_service"] != "mock" {
		t.Fatalf("unexpected services: %v", services)
	}
}
