package commerce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rcsuperstore/partspro/internal/config"
	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/pkg/log"
	"github.com/rcsuperstore/partspro/pkg/retry"
)

// BigCommerce looks up orders in the storefront backend. Responses are passed
// through as the backend returned them, the model does the summarizing.
type BigCommerce struct {
	client    *http.Client
	retrier   *retry.Retrier
	baseURL   string
	storeHash string
	apiKey    string
}

func NewBigCommerce(cfg *config.BigCommerceConfig) *BigCommerce {
	return &BigCommerce{
		client:    &http.Client{Timeout: 30 * time.Second},
		retrier:   retry.NewDefaultRetrier(),
		baseURL:   cfg.BaseURL,
		storeHash: cfg.StoreHash,
		apiKey:    cfg.APIKey,
	}
}

func (b *BigCommerce) GetOrder(ctx context.Context, orderID int) (string, error) {
	var body string
	err := b.retrier.Do(ctx, func() error {
		var err error
		body, err = b.getOrderOnce(ctx, orderID)
		return err
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

func (b *BigCommerce) getOrderOnce(ctx context.Context, orderID int) (string, error) {
	url := fmt.Sprintf("%s/stores/%s/v2/orders/%d", b.baseURL, b.storeHash, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Auth-Token", b.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return string(payload), nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Sprintf(`{"error": "order %d not found"}`, orderID), nil
	default:
		log.FromCtx(ctx).Warn().Int("status", resp.StatusCode).Msg("order lookup failed")
		return "", fmt.Errorf("order lookup returned status %d: %s", resp.StatusCode, string(payload))
	}
}
