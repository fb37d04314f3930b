package analyses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/bootstrap"
	"lexibridge-backend/internal/shared/config"
)

type stubExtractor struct {
	text string
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	return s.text, nil
}

func buildApp(t *testing.T, extractedText string) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		ObjectStoreType: "none",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	app.DocumentsService.Extractor = &stubExtractor{text: extractedText}
	return app
}

func registerUser(t *testing.T, router *gin.Engine, username, email string) string {
	t.Helper()
	form := url.Values{
		"username": {username},
		"email":    {email},
		"password": {"Testpass123"},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return body.AccessToken
}

func uploadDocument(t *testing.T, router *gin.Engine, token, filename string) string {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("%PDF-1.4 payload")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload-document", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var uploaded struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return uploaded.DocumentID
}

func postForm(t *testing.T, router *gin.Engine, path string, form url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func getJSON(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeDocumentFlowWithMockEngine(t *testing.T) {
	app := buildApp(t, "this agreement binds the parties")
	token := registerUser(t, app.Router, "alice", "alice@example.com")
	documentID := uploadDocument(t, app.Router, token, "lease.pdf")

	resp := postForm(t, app.Router, "/analyze-document", url.Values{"documentId": {documentID}}, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("analyze: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var analyzed struct {
		Success      bool   `json:"success"`
		ResponseID   string `json:"responseId"`
		DocumentID   string `json:"documentId"`
		DocumentName string `json:"documentName"`
		AISummary    string `json:"aiSummary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		t.Fatalf("decode analyze response: %v", err)
	}
	if !analyzed.Success || analyzed.ResponseID == "" {
		t.Fatalf("unexpected analyze body: %s", resp.Body.String())
	}
	if analyzed.DocumentID != documentID || analyzed.DocumentName != "lease.pdf" {
		t.Fatalf("unexpected document references: %+v", analyzed)
	}
	if !strings.Contains(analyzed.AISummary, "# Document Analysis (Mock)") {
		t.Fatalf("expected mock-labeled summary without a provider, got %q", analyzed.AISummary)
	}

	// The document now reports a completed analysis with a preview.
	list := getJSON(t, app.Router, "/documents", token)
	var listed struct {
		Documents []struct {
			ID             string  `json:"id"`
			HasSummary     bool    `json:"hasSummary"`
			AnalysisStatus string  `json:"analysisStatus"`
			SummaryPreview *string `json:"summaryPreview"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(list.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(listed.Documents))
	}
	doc := listed.Documents[0]
	if doc.AnalysisStatus != "completed" || !doc.HasSummary {
		t.Fatalf("expected completed document with summary, got %+v", doc)
	}
	if doc.SummaryPreview == nil || !strings.HasSuffix(*doc.SummaryPreview, "...") {
		t.Fatalf("expected truncated summary preview, got %v", doc.SummaryPreview)
	}
	if len(*doc.SummaryPreview) > 153 {
		t.Fatalf("expected preview capped at 150 chars plus ellipsis, got %d", len(*doc.SummaryPreview))
	}

	// The interaction is recorded in chat history.
	history := getJSON(t, app.Router, "/chat-history", token)
	var recorded struct {
		Success   bool `json:"success"`
		Responses []struct {
			ResponseID   string  `json:"responseId"`
			DocumentID   *string `json:"documentId"`
			DocumentName string  `json:"documentName"`
			UserMessage  string  `json:"userMessage"`
			Type         string  `json:"type"`
		} `json:"responses"`
	}
	if err := json.NewDecoder(history.Body).Decode(&recorded); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(recorded.Responses) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(recorded.Responses))
	}
	entry := recorded.Responses[0]
	if entry.ResponseID != analyzed.ResponseID || entry.Type != "document_analysis" {
		t.Fatalf("unexpected history entry: %+v", entry)
	}
	if entry.UserMessage != "Analyze this document" {
		t.Fatalf("userMessage = %q", entry.UserMessage)
	}
	if entry.DocumentID == nil || *entry.DocumentID != documentID {
		t.Fatalf("expected history entry bound to document %s", documentID)
	}
}

func TestAnalyzeDocumentErrors(t *testing.T) {
	t.Run("missing documentId", func(t *testing.T) {
		app := buildApp(t, "content")
		token := registerUser(t, app.Router, "alice", "alice@example.com")

		resp := postForm(t, app.Router, "/analyze-document", url.Values{}, token)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})

	t.Run("unknown document", func(t *testing.T) {
		app := buildApp(t, "content")
		token := registerUser(t, app.Router, "alice", "alice@example.com")

		resp := postForm(t, app.Router, "/analyze-document", url.Values{"documentId": {"no-such-doc"}}, token)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d (%s)", resp.Code, resp.Body.String())
		}
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if body.Detail != "Document not found" {
			t.Fatalf("detail = %q", body.Detail)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		app := buildApp(t, "")
		token := registerUser(t, app.Router, "alice", "alice@example.com")
		documentID := uploadDocument(t, app.Router, token, "blank.pdf")

		resp := postForm(t, app.Router, "/analyze-document", url.Values{"documentId": {documentID}}, token)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d (%s)", resp.Code, resp.Body.String())
		}
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if body.Detail != "Document has no content to analyze" {
			t.Fatalf("detail = %q", body.Detail)
		}
	})

	t.Run("foreign document", func(t *testing.T) {
		app := buildApp(t, "content")
		aliceToken := registerUser(t, app.Router, "alice", "alice@example.com")
		bobToken := registerUser(t, app.Router, "bob", "bob@example.com")
		documentID := uploadDocument(t, app.Router, aliceToken, "secret.pdf")

		resp := postForm(t, app.Router, "/analyze-document", url.Values{"documentId": {documentID}}, bobToken)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign document, got %d", resp.Code)
		}
	})
}

func TestAskAI(t *testing.T) {
	t.Run("general question", func(t *testing.T) {
		app := buildApp(t, "content")
		token := registerUser(t, app.Router, "alice", "alice@example.com")

		resp := postForm(t, app.Router, "/ask-ai", url.Values{"question": {"What is a lien?"}}, token)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
		}
		var body struct {
			Success     bool   `json:"success"`
			ResponseID  string `json:"responseId"`
			UserMessage string `json:"userMessage"`
			AIResponse  string `json:"aiResponse"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode ask response: %v", err)
		}
		if !body.Success || body.ResponseID == "" || body.UserMessage != "What is a lien?" {
			t.Fatalf("unexpected ask body: %s", resp.Body.String())
		}
		if !strings.Contains(body.AIResponse, "Mock AI Response to: What is a lien?") {
			t.Fatalf("expected mock answer, got %q", body.AIResponse)
		}

		history := getJSON(t, app.Router, "/chat-history", token)
		var recorded struct {
			Responses []struct {
				DocumentID   *string `json:"documentId"`
				DocumentName string  `json:"documentName"`
				Type         string  `json:"type"`
			} `json:"responses"`
		}
		if err := json.NewDecoder(history.Body).Decode(&recorded); err != nil {
			t.Fatalf("decode history: %v", err)
		}
		if len(recorded.Responses) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(recorded.Responses))
		}
		entry := recorded.Responses[0]
		if entry.DocumentID != nil || entry.DocumentName != "General Question" || entry.Type != "question" {
			t.Fatalf("unexpected history entry: %+v", entry)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		app := buildApp(t, "content")
		token := registerUser(t, app.Router, "alice", "alice@example.com")

		resp := postForm(t, app.Router, "/ask-ai", url.Values{}, token)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})

	t.Run("unresolvable document context is ignored", func(t *testing.T) {
		app := buildApp(t, "content")
		token := registerUser(t, app.Router, "alice", "alice@example.com")

		resp := postForm(t, app.Router, "/ask-ai", url.Values{
			"question":   {"Explain clause 2"},
			"documentId": {"no-such-doc"},
		}, token)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 without document context, got %d (%s)", resp.Code, resp.Body.String())
		}
	})
}
