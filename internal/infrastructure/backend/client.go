// Package backend implements the typed HTTP client for the SpendFlow REST
// API. Every call acquires a bearer token, issues exactly one request, and
// surfaces the backend's error detail verbatim. There is no retry, backoff,
// caching, or request deduplication at this layer.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/api/metrics"
	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// fallbackDetail is surfaced when an error response body is not valid JSON
// or carries no detail field.
const fallbackDetail = "Unknown API Error"

// APIError is a non-2xx backend response. Its message is the detail field of
// the response body when present, else the generic fallback.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string { return e.Detail }

// spendNotFound translates a backend 404 into the domain sentinel, so
// callers never depend on this package's error types.
func spendNotFound(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return domain.ErrSpendNotFound
	}
	return err
}

// Config captures the settings needed to construct a Client.
type Config struct {
	BaseURL    string
	Tokens     ports.TokenSource
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the SpendFlow backend. It satisfies ports.Backend.
type Client struct {
	baseURL string
	tokens  ports.TokenSource
	httpc   *http.Client
	log     zerolog.Logger
}

var _ ports.Backend = (*Client)(nil)

// New builds a Client. A default HTTP timeout is applied when no custom
// http.Client is provided.
func New(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		tokens:  cfg.Tokens,
		httpc:   httpc,
		log:     cfg.Logger,
	}
}

// do issues a single authorized request and decodes the JSON response into
// out. Caller-supplied headers override the defaults. A 204 resolves without
// touching the body.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body any, out any, overrides http.Header) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotAuthenticated, err)
	}

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	for k, vs := range overrides {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues(op, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := struct {
			Detail string `json:"detail"`
		}{}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil || detail.Detail == "" {
			detail.Detail = fallbackDetail
		}
		c.log.Warn().Str("operation", op).Int("status", resp.StatusCode).Str("detail", detail.Detail).Msg("backend call failed")
		return &APIError{StatusCode: resp.StatusCode, Detail: detail.Detail}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	}
	return "other"
}

// intParam boxes a pagination value, treating zero as unset.
func intParam(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// boolParam boxes a flag, treating false as unset.
func boolParam(b bool) any {
	if !b {
		return nil
	}
	return b
}

// --- Users ---

func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, "get_me", http.MethodGet, "/users/me", nil, &u, nil); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Spends ---

func (c *Client) ListSpends(ctx context.Context, in ports.ListSpendsInput) (*ports.Page[domain.Spend], error) {
	q := buildQuery([]Param{
		{Key: "status", Value: in.Status},
		{Key: "page", Value: intParam(in.Page)},
		{Key: "limit", Value: intParam(in.Limit)},
	})
	var page ports.Page[domain.Spend]
	if err := c.do(ctx, "list_spends", http.MethodGet, "/spends"+q, nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetSpend(ctx context.Context, id string) (*domain.Spend, error) {
	var s domain.Spend
	if err := c.do(ctx, "get_spend", http.MethodGet, "/spends/"+id, nil, &s, nil); err != nil {
		return nil, spendNotFound(err)
	}
	return &s, nil
}

type createSpendRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	SpendDate   string  `json:"spend_date"`
	Source      string  `json:"source"`
	ReceiptURL  string  `json:"receipt_url,omitempty"`
}

func (c *Client) CreateSpend(ctx context.Context, in ports.CreateSpendInput) (*domain.Spend, error) {
	req := createSpendRequest{
		Amount:      in.Amount,
		Currency:    in.Currency,
		Category:    in.Category,
		Description: in.Description,
		SpendDate:   in.SpendDate,
		Source:      in.Source,
		ReceiptURL:  in.ReceiptURL,
	}
	var s domain.Spend
	if err := c.do(ctx, "create_spend", http.MethodPost, "/spends", req, &s, nil); err != nil {
		return nil, err
	}
	return &s, nil
}

// --- Approvals ---

type decisionRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Comment  string `json:"comment,omitempty"`
}

func (c *Client) Approve(ctx context.Context, in ports.DecisionInput) (*domain.Spend, error) {
	return c.decide(ctx, "approve", "/approvals/"+in.SpendID+"/approve", in)
}

func (c *Client) Reject(ctx context.Context, in ports.DecisionInput) (*domain.Spend, error) {
	return c.decide(ctx, "reject", "/approvals/"+in.SpendID+"/reject", in)
}

func (c *Client) decide(ctx context.Context, op, endpoint string, in ports.DecisionInput) (*domain.Spend, error) {
	req := decisionRequest{UserID: in.ActorID, UserName: in.ActorName, Comment: in.Comment}
	var s domain.Spend
	if err := c.do(ctx, op, http.MethodPost, endpoint, req, &s, nil); err != nil {
		return nil, spendNotFound(err)
	}
	return &s, nil
}

// --- Policies ---

func (c *Client) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	var out []domain.Policy
	if err := c.do(ctx, "list_policies", http.MethodGet, "/policies", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

type createPolicyRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Active      bool                `json:"active"`
	Rules       []domain.PolicyRule `json:"rules"`
	CreatedBy   string              `json:"createdBy,omitempty"`
}

func (c *Client) CreatePolicy(ctx context.Context, in ports.CreatePolicyInput) (*domain.Policy, error) {
	req := createPolicyRequest{
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
		Rules:       in.Rules,
		CreatedBy:   in.CreatedBy,
	}
	var p domain.Policy
	if err := c.do(ctx, "create_policy", http.MethodPost, "/policies", req, &p, nil); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) TogglePolicy(ctx context.Context, id string) (*domain.Policy, error) {
	var p domain.Policy
	if err := c.do(ctx, "toggle_policy", http.MethodPost, "/policies/"+id+"/toggle", nil, &p, nil); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePolicy(ctx context.Context, id string) error {
	return c.do(ctx, "delete_policy", http.MethodDelete, "/policies/"+id, nil, nil, nil)
}

// --- Categories ---

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, "list_categories", http.MethodGet, "/categories", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Notifications ---

func (c *Client) ListNotifications(ctx context.Context, in ports.ListNotificationsInput) (*ports.Page[domain.Notification], error) {
	q := buildQuery([]Param{
		{Key: "page", Value: intParam(in.Page)},
		{Key: "pageSize", Value: intParam(in.PageSize)},
		{Key: "unreadOnly", Value: boolParam(in.UnreadOnly)},
	})
	var page ports.Page[domain.Notification]
	if err := c.do(ctx, "list_notifications", http.MethodGet, "/notifications"+q, nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, "mark_notification_read", http.MethodPost, "/notifications/"+id+"/read", nil, nil, nil)
}

type markAllReadRequest struct {
	UserID string `json:"userId"`
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	return c.do(ctx, "mark_all_notifications_read", http.MethodPost, "/notifications/mark-all-read", markAllReadRequest{UserID: userID}, nil, nil)
}

// --- Audit logs ---

func (c *Client) ListAuditLogs(ctx context.Context, in ports.ListAuditLogsInput) (*ports.Page[domain.AuditLogEntry], error) {
	q := buildQuery([]Param{
		{Key: "page", Value: intParam(in.Page)},
		{Key: "pageSize", Value: intParam(in.PageSize)},
		{Key: "action", Value: in.Action},
		{Key: "entityType", Value: in.EntityType},
	})
	var page ports.Page[domain.AuditLogEntry]
	if err := c.do(ctx, "list_audit_logs", http.MethodGet, "/audit-logs"+q, nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}
