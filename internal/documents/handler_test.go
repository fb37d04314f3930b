package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/bootstrap"
	"lexibridge-backend/internal/extract"
	"lexibridge-backend/internal/shared/config"
)

const maxUploadSize = 25 << 20

type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func buildDocsApp(t *testing.T, extractor extract.Extractor) *bootstrap.App {
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
	app.DocumentsService.Extractor = extractor
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

func uploadFile(t *testing.T, router *gin.Engine, token, filename string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(payload); err != nil {
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
	return resp
}

func errorDetail(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return body.Detail
}

func TestUploadRejectsNonPDF(t *testing.T) {
	extractor := &stubExtractor{text: "ignored"}
	app := buildDocsApp(t, extractor)
	token := registerUser(t, app.Router, "alice", "alice@example.com")

	resp := uploadFile(t, app.Router, token, "notes.txt", []byte("plain text"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", resp.Code, resp.Body.String())
	}
	if detail := errorDetail(t, resp); detail != "Only PDF files are allowed" {
		t.Fatalf("detail = %q, want %q", detail, "Only PDF files are allowed")
	}
	if extractor.calls != 0 {
		t.Fatalf("expected extractor untouched for rejected upload")
	}
}

func TestUploadSizeBoundary(t *testing.T) {
	extractor := &stubExtractor{text: "extracted text"}
	app := buildDocsApp(t, extractor)
	token := registerUser(t, app.Router, "alice", "alice@example.com")

	atLimit := uploadFile(t, app.Router, token, "big.pdf", bytes.Repeat([]byte("a"), maxUploadSize))
	if atLimit.Code != http.StatusOK {
		t.Fatalf("exactly at cap: expected 200, got %d (%s)", atLimit.Code, atLimit.Body.String())
	}

	overLimit := uploadFile(t, app.Router, token, "huge.pdf", bytes.Repeat([]byte("a"), maxUploadSize+1))
	if overLimit.Code != http.StatusBadRequest {
		t.Fatalf("one byte over cap: expected 400, got %d", overLimit.Code)
	}
	if detail := errorDetail(t, overLimit); detail != "File size exceeds 25MB limit" {
		t.Fatalf("detail = %q, want %q", detail, "File size exceeds 25MB limit")
	}
}

func TestUploadSurfacesExtractionFailure(t *testing.T) {
	extractor := &stubExtractor{err: &extract.Error{Cause: errors.New("bad xref table")}}
	app := buildDocsApp(t, extractor)
	token := registerUser(t, app.Router, "alice", "alice@example.com")

	resp := uploadFile(t, app.Router, token, "corrupt.pdf", []byte("garbage"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", resp.Code, resp.Body.String())
	}
	if detail := errorDetail(t, resp); detail != "Failed to extract text from PDF: bad xref table" {
		t.Fatalf("unexpected detail: %q", detail)
	}

	// A failed extraction must not leave a document behind.
	list := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	app.Router.ServeHTTP(list, req)
	var listed struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.NewDecoder(list.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Documents) != 0 {
		t.Fatalf("expected no documents, got %d", len(listed.Documents))
	}
}

func TestUploadListAndGetFlow(t *testing.T) {
	extractor := &stubExtractor{text: "this agreement is made between the parties"}
	app := buildDocsApp(t, extractor)
	token := registerUser(t, app.Router, "alice", "alice@example.com")

	first := uploadFile(t, app.Router, token, "lease.pdf", []byte("%PDF-1.4 lease"))
	if first.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d (%s)", first.Code, first.Body.String())
	}
	var uploaded struct {
		Success             bool   `json:"success"`
		DocumentID          string `json:"documentId"`
		DocumentName        string `json:"documentName"`
		ExtractedTextLength int    `json:"extractedTextLength"`
		FileSize            int64  `json:"fileSize"`
		AnalysisStatus      string `json:"analysisStatus"`
	}
	if err := json.NewDecoder(first.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if !uploaded.Success || uploaded.DocumentID == "" {
		t.Fatalf("unexpected upload body: %s", first.Body.String())
	}
	if uploaded.AnalysisStatus != "pending" {
		t.Fatalf("expected pending status, got %q", uploaded.AnalysisStatus)
	}
	if uploaded.ExtractedTextLength != len(extractor.text) {
		t.Fatalf("extractedTextLength = %d, want %d", uploaded.ExtractedTextLength, len(extractor.text))
	}
	if uploaded.FileSize != int64(len("%PDF-1.4 lease")) {
		t.Fatalf("fileSize = %d, want %d", uploaded.FileSize, len("%PDF-1.4 lease"))
	}

	time.Sleep(5 * time.Millisecond) // distinct createdAt for ordering
	second := uploadFile(t, app.Router, token, "nda.pdf", []byte("%PDF-1.4 nda"))
	if second.Code != http.StatusOK {
		t.Fatalf("second upload: expected 200, got %d", second.Code)
	}

	listResp := httptest.NewRecorder()
	listReq := httptest.NewRequest(http.MethodGet, "/documents", nil)
	listReq.Header.Set("Authorization", "Bearer "+token)
	app.Router.ServeHTTP(listResp, listReq)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", listResp.Code)
	}
	var listed struct {
		Success   bool `json:"success"`
		Documents []struct {
			ID             string  `json:"id"`
			DocumentName   string  `json:"documentName"`
			HasSummary     bool    `json:"hasSummary"`
			AnalysisStatus string  `json:"analysisStatus"`
			SummaryPreview *string `json:"summaryPreview"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(listed.Documents))
	}
	if listed.Documents[0].DocumentName != "nda.pdf" || listed.Documents[1].DocumentName != "lease.pdf" {
		t.Fatalf("expected newest first, got %q then %q",
			listed.Documents[0].DocumentName, listed.Documents[1].DocumentName)
	}
	if listed.Documents[0].HasSummary || listed.Documents[0].SummaryPreview != nil {
		t.Fatalf("expected no summary before analysis")
	}

	getResp := httptest.NewRecorder()
	getReq := httptest.NewRequest(http.MethodGet, "/documents/"+uploaded.DocumentID, nil)
	getReq.Header.Set("Authorization", "Bearer "+token)
	app.Router.ServeHTTP(getResp, getReq)
	if getResp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d (%s)", getResp.Code, getResp.Body.String())
	}
	var fetched struct {
		Success  bool `json:"success"`
		Document struct {
			ID              string `json:"id"`
			DocumentContent string `json:"documentContent"`
			AISummary       string `json:"aiSummary"`
			AnalysisStatus  string `json:"analysisStatus"`
		} `json:"document"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if fetched.Document.ID != uploaded.DocumentID {
		t.Fatalf("fetched wrong document: %+v", fetched.Document)
	}
	if fetched.Document.DocumentContent != extractor.text {
		t.Fatalf("expected full extracted content in detail view")
	}
}

func TestDownloadReturnsOriginalBytes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	app.DocumentsService.Extractor = &stubExtractor{text: "lease text"}
	token := registerUser(t, app.Router, "alice", "alice@example.com")

	payload := []byte("%PDF-1.4 lease body")
	upload := uploadFile(t, app.Router, token, "lease.pdf", payload)
	if upload.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d (%s)", upload.Code, upload.Body.String())
	}
	var uploaded struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(upload.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload: %v", err)
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents/"+uploaded.DocumentID+"/download", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	if !bytes.Equal(resp.Body.Bytes(), payload) {
		t.Fatalf("downloaded bytes differ from uploaded payload")
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("Content-Type = %q, want application/pdf", got)
	}
	if got := resp.Header().Get("Content-Disposition"); got != `attachment; filename="lease.pdf"` {
		t.Fatalf("unexpected Content-Disposition: %q", got)
	}

	// A foreign caller gets 404, not the file.
	bobToken := registerUser(t, app.Router, "bob", "bob@example.com")
	foreign := httptest.NewRecorder()
	foreignReq := httptest.NewRequest(http.MethodGet, "/documents/"+uploaded.DocumentID+"/download", nil)
	foreignReq.Header.Set("Authorization", "Bearer "+bobToken)
	app.Router.ServeHTTP(foreign, foreignReq)
	if foreign.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign download, got %d", foreign.Code)
	}
}

func TestDownloadWithoutRetainedFile(t *testing.T) {
	extractor := &stubExtractor{text: "lease text"}
	app := buildDocsApp(t, extractor) // retention disabled
	token := registerUser(t, app.Router, "alice", "alice@example.com")

	upload := uploadFile(t, app.Router, token, "lease.pdf", []byte("%PDF-1.4"))
	if upload.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d", upload.Code)
	}
	var uploaded struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(upload.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload: %v", err)
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents/"+uploaded.DocumentID+"/download", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when no file was retained, got %d", resp.Code)
	}
	if detail := errorDetail(t, resp); detail != "Original file is not available for this document" {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestDocumentsAreOwnerScoped(t *testing.T) {
	extractor := &stubExtractor{text: "alice's private document"}
	app := buildDocsApp(t, extractor)
	aliceToken := registerUser(t, app.Router, "alice", "alice@example.com")
	bobToken := registerUser(t, app.Router, "bob", "bob@example.com")

	upload := uploadFile(t, app.Router, aliceToken, "secret.pdf", []byte("%PDF-1.4"))
	if upload.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d", upload.Code)
	}
	var uploaded struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(upload.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload: %v", err)
	}

	// Bob cannot see Alice's document by id.
	getResp := httptest.NewRecorder()
	getReq := httptest.NewRequest(http.MethodGet, "/documents/"+uploaded.DocumentID, nil)
	getReq.Header.Set("Authorization", "Bearer "+bobToken)
	app.Router.ServeHTTP(getResp, getReq)
	if getResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign document, got %d", getResp.Code)
	}

	// Bob's listing is empty.
	listResp := httptest.NewRecorder()
	listReq := httptest.NewRequest(http.MethodGet, "/documents", nil)
	listReq.Header.Set("Authorization", "Bearer "+bobToken)
	app.Router.ServeHTTP(listResp, listReq)
	var listed struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Documents) != 0 {
		t.Fatalf("expected empty listing for other user, got %d", len(listed.Documents))
	}
}
