// Package media uploads receipt files directly to the media storage service.
// This path is independent of the backend API: no bearer token, the upload is
// authorized by an unsigned, preset-scoped endpoint.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// Config captures the media service settings.
type Config struct {
	// UploadURL is the preset-scoped upload endpoint, e.g.
	// "https://api.cloudinary.com/v1_1/<cloud>/auto/upload".
	UploadURL  string
	Preset     string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Uploader implements ports.ReceiptUploader against the media service.
type Uploader struct {
	cfg   Config
	httpc *http.Client
	log   zerolog.Logger
}

var _ ports.ReceiptUploader = (*Uploader)(nil)

func New(cfg Config) *Uploader {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Uploader{cfg: cfg, httpc: httpc, log: cfg.Logger}
}

// Upload sends the file and returns the durable URL of the stored asset.
// Every failure collapses into the generic upload error; the enclosing
// submission flow aborts rather than retrying without the attachment.
func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read upload file: %w", err)
	}
	if err := mw.WriteField("upload_preset", u.cfg.Preset); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.UploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		u.log.Warn().Int("status", resp.StatusCode).Str("filename", filename).Msg("media upload rejected")
		return "", domain.ErrUploadFailed
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if result.SecureURL == "" {
		return "", domain.ErrUploadFailed
	}
	return result.SecureURL, nil
}
