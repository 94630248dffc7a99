package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel       = "gemini-2.0-flash"
	jsonResponseType   = "application/json"
	defaultHTTPTimeout = 60 * time.Second
)

// Config captures the runtime settings required to talk to Gemini.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	VisionModel    string
	TimeoutSeconds int
}

// Client wraps the Gemini generateContent API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.cfg.BaseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a Gemini API client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:          strings.TrimSpace(cfg.Model),
			VisionModel:    strings.TrimSpace(cfg.VisionModel),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.cfg.VisionModel == "" {
		client.cfg.VisionModel = client.cfg.Model
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Analysis captures the JSON payload returned for a journal entry.
type Analysis struct {
	Emotion     string   `json:"emotion"`
	Themes      []string `json:"themes"`
	Suggestion  string   `json:"suggestion"`
	Affirmation string   `json:"affirmation"`
	Raw         string   `json:"-"`
}

// WeeklySummary captures the JSON payload returned for a week of entries.
type WeeklySummary struct {
	Summary         string   `json:"summary"`
	EmotionTrend    string   `json:"emotion_trend"`
	Recommendations []string `json:"recommendations"`
	Raw             string   `json:"-"`
}

// ImageAnalysis captures the JSON payload returned for a journal photo.
type ImageAnalysis struct {
	DetectedEmotion string `json:"detected_emotion"`
	Faces           int    `json:"faces"`
	Description     string `json:"description"`
	Raw             string `json:"-"`
}

// AnalyzeEntry asks Gemini to analyze a journal entry and returns the
// structured emotion/theme payload.
func (c *Client) AnalyzeEntry(ctx context.Context, text string) (Analysis, error) {
	var empty Analysis
	text = strings.TrimSpace(text)
	if text == "" {
		return empty, errors.New("gemini analyze: entry text required")
	}
	content, err := c.generate(ctx, "gemini analyze", c.cfg.Model, []part{{Text: buildAnalysisPrompt(text)}})
	if err != nil {
		return empty, err
	}
	var parsed Analysis
	parsed.Raw = content
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return empty, fmt.Errorf("gemini analyze: parse payload: %w", err)
	}
	parsed.Emotion = strings.ToLower(strings.TrimSpace(parsed.Emotion))
	if len(parsed.Themes) > 3 {
		parsed.Themes = parsed.Themes[:3]
	}
	parsed.Suggestion = strings.TrimSpace(parsed.Suggestion)
	parsed.Affirmation = strings.TrimSpace(parsed.Affirmation)
	return parsed, nil
}

// SummarizeWeek asks Gemini for a summary of the combined text of one week
// of journal entries.
func (c *Client) SummarizeWeek(ctx context.Context, combined string) (WeeklySummary, error) {
	var empty WeeklySummary
	combined = strings.TrimSpace(combined)
	if combined == "" {
		return empty, errors.New("gemini summarize: entry text required")
	}
	content, err := c.generate(ctx, "gemini summarize", c.cfg.Model, []part{{Text: buildWeeklySummaryPrompt(combined)}})
	if err != nil {
		return empty, err
	}
	var parsed WeeklySummary
	parsed.Raw = content
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return empty, fmt.Errorf("gemini summarize: parse payload: %w", err)
	}
	return parsed, nil
}

// AnalyzeImage asks the vision model to describe a journal photo and report
// detected faces and their dominant emotion.
func (c *Client) AnalyzeImage(ctx context.Context, mimeType string, data []byte) (ImageAnalysis, error) {
	var empty ImageAnalysis
	if len(data) == 0 {
		return empty, errors.New("gemini vision: image data required")
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	parts := []part{
		{Text: imageAnalysisPrompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
	}
	content, err := c.generate(ctx, "gemini vision", c.cfg.VisionModel, parts)
	if err != nil {
		return empty, err
	}
	var parsed ImageAnalysis
	parsed.Raw = content
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return empty, fmt.Errorf("gemini vision: parse payload: %w", err)
	}
	parsed.DetectedEmotion = strings.ToLower(strings.TrimSpace(parsed.DetectedEmotion))
	return parsed, nil
}

// HealthCheck verifies the API key and endpoint with a minimal model lookup.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return errors.New("gemini health: api key required")
	}
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "models", c.cfg.Model)
	if err != nil {
		return fmt.Errorf("gemini health: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("gemini health: request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini health: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gemini health: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"topK,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// generate performs one generateContent call and returns the concatenated
// text of the first candidate.
func (c *Client) generate(ctx context.Context, op, model string, parts []part) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%s: api key required", op)
	}
	body := generateRequest{
		Contents: []requestContent{{Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:      0.7,
			TopK:             50,
			TopP:             0.9,
			ResponseMimeType: jsonResponseType,
		},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", op, err)
	}
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "models", model+":generateContent")
	if err != nil {
		return "", fmt.Errorf("%s: build url: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("%s: request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%s: http %d: %s", op, resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("%s: api error: %s", op, strings.TrimSpace(decoded.Error.Message))
	}
	if len(decoded.Candidates) == 0 {
		return "", fmt.Errorf("%s: empty candidates", op)
	}
	var text strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	content := strings.TrimSpace(text.String())
	if content == "" {
		return "", fmt.Errorf("%s: empty content (finish_reason=%q)", op, decoded.Candidates[0].FinishReason)
	}
	return content, nil
}
