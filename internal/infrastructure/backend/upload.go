package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/spendflow/spend-console/internal/api/metrics"
	"github.com/spendflow/spend-console/internal/core/domain"
)

// UploadReceipt attaches a receipt file to a spend. Unlike every other call
// the body is multipart form data, but the bearer token is still required.
// Any non-OK response collapses into the generic upload failure.
func (c *Client) UploadReceipt(ctx context.Context, spendID, filename string, content io.Reader) (string, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNotAuthenticated, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read receipt file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finish upload form: %w", err)
	}

	endpoint := "/receipts" + buildQuery([]Param{{Key: "spend_id", Value: spendID}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.ReceiptUploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ReceiptUploadsTotal.WithLabelValues("error").Inc()
		c.log.Warn().Str("spend_id", spendID).Int("status", resp.StatusCode).Msg("receipt upload rejected")
		return "", domain.ErrUploadFailed
	}

	var receipt struct {
		FileURL string `json:"file_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		metrics.ReceiptUploadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	metrics.ReceiptUploadsTotal.WithLabelValues("ok").Inc()
	return receipt.FileURL, nil
}
