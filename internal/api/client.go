// Package api is the HTTP client for the SAMVADHAAN backend. Every call
// takes a context, speaks JSON (multipart for uploads), and fails with a
// normalized *Error carrying a human-readable message plus an optional
// status code. Nothing above this package inspects transport detail.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single backend call. Uploads and
	// simplification run OCR and LLM stages server-side, so this is
	// deliberately generous.
	DefaultTimeout = 5 * time.Minute

	// apiPrefix is the path prefix shared by all backend routes.
	apiPrefix = "/api"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the backend origin, without the /api prefix.
	BaseURL string

	// Timeout bounds each individual call.
	Timeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client talks to the SAMVADHAAN backend. It is safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger

	// sessionID scopes conversational memory on the backend. One client
	// is one conversation.
	sessionID string
}

// NewClient creates a backend client.
func NewClient(cfg Config, log *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       log.With("component", "api"),
		sessionID: uuid.New().String(),
	}
}

// SessionID returns the conversation session ID sent with RAG queries.
func (c *Client) SessionID() string {
	return c.sessionID
}

// UploadDocument sends a document for extraction and indexing. The filename
// travels in the multipart form so the backend can key chunks by document.
func (c *Client) UploadDocument(ctx context.Context, filename string,
	content io.Reader) (*UploadResult, error) {

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, newError("build upload form", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, newError("read document", err)
	}
	if err := form.Close(); err != nil {
		return nil, newError("finalize upload form", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.url("/upload"), &body,
	)
	if err != nil {
		return nil, newError("upload", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	c.log.InfoContext(ctx, "uploading document", "filename", filename)

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetStatus fetches the vector store status.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	var status Status
	err := c.getJSON(ctx, "/status", &status)
	if err != nil {
		return nil, err
	}

	return &status, nil
}

// QueryRAG asks a question against the indexed documents. The client's
// session ID threads conversational memory through consecutive questions.
func (c *Client) QueryRAG(ctx context.Context,
	question string) (*Answer, error) {

	payload := map[string]string{
		"question":   question,
		"session_id": c.sessionID,
	}

	var answer Answer
	err := c.postJSON(ctx, "/query", payload, &answer)
	if err != nil {
		return nil, err
	}

	return &answer, nil
}

// GetPlainLanguage requests a plain-language simplification of the uploaded
// document. targetLanguage and documentName may be empty: an empty language
// skips the server-side translation pass, an empty name simplifies across
// all indexed documents.
func (c *Client) GetPlainLanguage(ctx context.Context, targetLanguage,
	documentName string) (*SimplifyResult, error) {

	payload := map[string]string{
		"target_language": targetLanguage,
		"document_name":   documentName,
	}

	var result SimplifyResult
	err := c.postJSON(ctx, "/simplify", payload, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetLawyerRecommendations runs lawyer discovery for the given criteria.
func (c *Client) GetLawyerRecommendations(ctx context.Context,
	criteria LawyerCriteria) (*LawyerList, error) {

	var list LawyerList
	err := c.postJSON(ctx, "/discover-lawyers", criteria, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// TranslateText translates English text into the target language.
func (c *Client) TranslateText(ctx context.Context, text,
	targetLanguage string) (*Translation, error) {

	payload := map[string]string{
		"text":            text,
		"target_language": targetLanguage,
	}

	var translation Translation
	err := c.postJSON(ctx, "/translate", payload, &translation)
	if err != nil {
		return nil, err
	}

	return &translation, nil
}

// TextToSpeech synthesizes speech for the given text and language.
func (c *Client) TextToSpeech(ctx context.Context, text,
	language string) (*SpeechAudio, error) {

	payload := map[string]string{
		"text":     text,
		"language": language,
	}

	var audio SpeechAudio
	err := c.postJSON(ctx, "/tts", payload, &audio)
	if err != nil {
		return nil, err
	}

	return &audio, nil
}

// ClearStore wipes the backend vector store.
func (c *Client) ClearStore(ctx context.Context) error {
	return c.postJSON(ctx, "/clear", struct{}{}, nil)
}

// url joins the base URL, API prefix, and route path.
func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + apiPrefix + path
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.url(path), nil,
	)
	if err != nil {
		return newError(path, err)
	}

	return c.do(req, out)
}

// postJSON issues a POST with a JSON body and decodes the JSON response
// into out. A nil out discards the response body.
func (c *Client) postJSON(ctx context.Context, path string, payload,
	out any) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return newError(path, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.url(path), bytes.NewReader(body),
	)
	if err != nil {
		return newError(path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes the request and normalizes every failure path into *Error.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return newError(req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(req.URL.Path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{
			Message:    errorMessage(raw, resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return newError("decode response", err)
	}

	return nil
}

// errorMessage extracts a human-readable message from an error body. The
// backend reports errors as {"detail": "..."} where detail is either a
// string or a nested {"message": "..."} object.
func errorMessage(raw []byte, statusCode int) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}

		var detail string
		if json.Unmarshal(envelope.Detail, &detail) == nil &&
			detail != "" {

			return detail
		}

		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Detail, &nested) == nil &&
			nested.Message != "" {

			return nested.Message
		}
	}

	return fmt.Sprintf("backend request failed with status %d",
		statusCode)
}
