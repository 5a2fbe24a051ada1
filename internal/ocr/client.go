package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Recognizer extracts plain text from an image payload.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Client implements Recognizer against a local OCR sidecar over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an OCR client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("OCR_BASE_URL is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type recognizeRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type recognizeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Recognize sends the image to the sidecar and returns its plain text.
func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	payload, err := json.Marshal(recognizeRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return "", fmt.Errorf("ocr marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recognize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ocr build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ocr read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ocr decode response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ocr: %s", parsed.Error)
	}
	return parsed.Text, nil
}

// Noop is used when no OCR sidecar is configured; it yields no text.
type Noop struct{}

func (Noop) Recognize(ctx context.Context, image []byte) (string, error) {
	return "", nil
}
