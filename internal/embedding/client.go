// Package embedding is a client for the sentence-transformer sidecar that
// turns text into vectors. The service exposes a single POST /embed endpoint
// and returns a batch of vectors; we send one text per call.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Embedder converts text into a vector via an external collaborator.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Client implements Embedder over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient constructs a client for the embedding service at url,
// e.g. "http://127.0.0.1:5050/embed".
func NewClient(url string) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("EMBEDDING_URL is required")
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// Embed returns the vector for text. Input is lower-cased and trimmed to
// match what the model server expects.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, errors.New("empty text for embedding")
	}

	payload, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed embedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("embedding response parse: %w", err)
	}
	if len(parsed.Embeddings) == 0 || len(parsed.Embeddings[0]) == 0 {
		return nil, errors.New("embedding service returned no vectors")
	}
	return parsed.Embeddings[0], nil
}

var _ Embedder = (*Client)(nil)
