// Package media talks to the external image host over its two-endpoint HTTP
// API: multipart upload returning {url, public_id}, and deletion by public id.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Config captures the media host endpoint and credentials.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements ports.MediaStore against the media host's REST API.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Upload sends the picture bytes and returns the hosted reference.
func (c *Client) Upload(ctx context.Context, data []byte, folder, filename string) (domain.Image, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("folder", folder); err != nil {
		return domain.Image{}, fmt.Errorf("media upload: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return domain.Image{}, fmt.Errorf("media upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return domain.Image{}, fmt.Errorf("media upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return domain.Image{}, fmt.Errorf("media upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/upload", &buf)
	if err != nil {
		return domain.Image{}, fmt.Errorf("media upload: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Image{}, fmt.Errorf("media upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Image{}, fmt.Errorf("media upload: host returned %d: %s", resp.StatusCode, body)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Image{}, fmt.Errorf("media upload: decode response: %w", err)
	}

	return domain.Image{URL: out.URL, PublicID: out.PublicID}, nil
}

// Delete removes a hosted picture by its public id. The host treats deletion
// as idempotent, so a 404 counts as success.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	endpoint := c.cfg.BaseURL + "/images/" + url.PathEscape(publicID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("media delete: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("media delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media delete: host returned %d", resp.StatusCode)
	}
	return nil
}
