package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"apprev/internal/config"
	"apprev/internal/domain"
	"apprev/internal/port"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
}

// NewClient creates a FieldExtractor backed by the external extraction
// service's HTTP API.
func NewClient(cfg *config.ExtractionConfig) port.FieldExtractor {
	return &client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
	}
}

type extractRequest struct {
	FormType    string `json:"form_type"`
	Section     string `json:"section"`
	ContentType string `json:"content_type"`
	Document    string `json:"document"`
}

type extractResponse struct {
	Fields map[string]any `json:"fields"`
	Error  string         `json:"error,omitempty"`
}

// Extract posts the document to the extraction service and decodes the
// returned field map. Retries on transport errors and 5xx responses.
func (c *client) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("extraction.Client: %w: no base URL configured", domain.ErrExtractionFailed)
	}

	body, err := json.Marshal(extractRequest{
		FormType:    input.FormType,
		Section:     input.Section,
		ContentType: input.ContentType,
		Document:    base64.StdEncoding.EncodeToString(input.FileBytes),
	})
	if err != nil {
		return nil, fmt.Errorf("extraction.Client: encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("extraction.Client: retrying extract (attempt %d/%d) after: %v", attempt, c.maxRetries, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		out, retryable, err := c.doExtract(ctx, body)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("extraction.Client: %w: %v", domain.ErrExtractionFailed, lastErr)
}

func (c *client) doExtract(ctx context.Context, body []byte) (*port.ExtractOutput, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("posting document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, true, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("extraction service returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var decoded extractResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, false, fmt.Errorf("decoding response: %w", err)
	}
	if decoded.Error != "" {
		return nil, false, fmt.Errorf("extraction service error: %s", decoded.Error)
	}
	return &port.ExtractOutput{Fields: decoded.Fields}, false, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
