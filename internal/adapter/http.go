package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/utils"
	"github.com/MKhiriev/go-fin-tracker/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. adapterCfg.HTTPAddress may be a bare host:port, in which
// case http:// is assumed.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (models.RegisterResponse, error) {
	var registered models.RegisterResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&registered).
		Post("/api/auth/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return registered, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.TokenPair, error) {
	var tokens models.TokenPair

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&tokens).
		Post("/api/auth/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.SetToken(tokens.AccessToken)
	h.logger.Debug().Str("func", "httpServerAdapter.Login").Msg("access token received")
	return tokens, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) CreateTransaction(ctx context.Context, request models.CreateTransactionRequest) (models.Transaction, error) {
	var created models.TransactionResponse

	resp, err := h.authedRequest(ctx).
		SetBody(request).
		SetResult(&created).
		Post("/api/transactions")
	if err != nil {
		return models.Transaction{}, fmt.Errorf("create transaction request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transaction{}, err
	}

	return created.Transaction, nil
}

func (h *httpServerAdapter) ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionPage, error) {
	var page models.TransactionPage

	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(queryValues(query)).
		SetResult(&page).
		Get("/api/transactions")
	if err != nil {
		return models.TransactionPage{}, fmt.Errorf("list transactions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TransactionPage{}, err
	}

	return page, nil
}

func (h *httpServerAdapter) GetTransaction(ctx context.Context, transactionID int64) (models.Transaction, error) {
	var found models.TransactionResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("transaction_id", strconv.FormatInt(transactionID, 10)).
		SetResult(&found).
		Get("/api/transactions/{transaction_id}")
	if err != nil {
		return models.Transaction{}, fmt.Errorf("get transaction request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transaction{}, err
	}

	return found.Transaction, nil
}

func (h *httpServerAdapter) DeleteTransaction(ctx context.Context, transactionID int64) (int64, error) {
	var deleted models.DeleteTransactionResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("transaction_id", strconv.FormatInt(transactionID, 10)).
		SetResult(&deleted).
		Delete("/api/transactions/{transaction_id}")
	if err != nil {
		return 0, fmt.Errorf("delete transaction request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return deleted.TransactionID, nil
}

// Health reports the server status. A 503 still carries a report, so it is
// returned together with the error.
func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var report models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&report).
		SetError(&report).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}

	return report, mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var version models.VersionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&version).
		Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	return version, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// queryValues encodes only the set parts of query; the server fills in the
// defaults for the rest.
func queryValues(query models.TransactionQuery) url.Values {
	values := url.Values{}

	if query.Page.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page.Page))
	}
	if query.Page.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(query.Page.PerPage))
	}
	if query.Sort.SortBy != "" {
		values.Set("sort_by", string(query.Sort.SortBy))
	}
	if query.Sort.SortOrder != "" {
		values.Set("sort_order", string(query.Sort.SortOrder))
	}

	filters := query.Filters
	if filters.Category != nil {
		values.Set("category", *filters.Category)
	}
	if filters.TransactionType != nil {
		values.Set("transaction_type", string(*filters.TransactionType))
	}
	if filters.StartDate != nil {
		values.Set("start_date", filters.StartDate.UTC().Format(time.RFC3339))
	}
	if filters.EndDate != nil {
		values.Set("end_date", filters.EndDate.UTC().Format(time.RFC3339))
	}

	return values
}
