package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

// defaultTimeout bounds every backend round trip so a hung server cannot
// wedge the session.
const defaultTimeout = 10 * time.Second

// HTTPBackend implements Backend against the storefront's REST gateway.
type HTTPBackend struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPBackend(baseURL, token string) *HTTPBackend {
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (b *HTTPBackend) FetchCart(ctx context.Context) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := b.do(ctx, http.MethodGet, "/api/user/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *HTTPBackend) ReplaceCart(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	body := map[string]any{"items": items}
	return b.do(ctx, http.MethodPost, "/api/user/cart", body, nil)
}

func (b *HTTPBackend) RemoveItem(ctx context.Context, sku string) error {
	return b.do(ctx, http.MethodDelete, "/api/user/cart/"+url.PathEscape(sku), nil, nil)
}

func (b *HTTPBackend) UpdateQuantity(ctx context.Context, sku string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return b.do(ctx, http.MethodPut, "/api/user/cart/"+url.PathEscape(sku), body, nil)
}

func (b *HTTPBackend) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.token)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s (%d)", method, path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
