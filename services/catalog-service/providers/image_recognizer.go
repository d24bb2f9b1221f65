package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPImageRecognizer posts an image reference to a recognition service.
type HTTPImageRecognizer struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPImageRecognizer(endpoint, apiKey string) *HTTPImageRecognizer {
	return &HTTPImageRecognizer{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type recognizeRequest struct {
	Image string `json:"image"`
}

func (r *HTTPImageRecognizer) Recognize(ctx context.Context, imageRef string) (*Recognition, error) {
	body, err := json.Marshal(recognizeRequest{Image: imageRef})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image recognizer error (status %d): %s", resp.StatusCode, truncate(string(respBytes), 200))
	}

	var out Recognition
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Barcode == "" && out.ProductName == "" {
		return nil, nil
	}
	return &out, nil
}

// NoopImageRecognizer never recognizes anything; image scans then fall back
// to not_found.
type NoopImageRecognizer struct{}

func (NoopImageRecognizer) Recognize(ctx context.Context, imageRef string) (*Recognition, error) {
	return nil, nil
}
