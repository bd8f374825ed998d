package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Eutropios/WarMAC/config"
	"github.com/Eutropios/WarMAC/models"
	"github.com/Eutropios/WarMAC/utils"
)

// Typed errors for the HTTP statuses the marketplace is known to return.
var (
	ErrUnauthorized = errors.New("error 401, insufficient credentials; please log in before making this transaction")
	ErrForbidden    = errors.New("error 403, the URL you've requested is forbidden")
	ErrItemNotFound = errors.New("error 404, this item does not exist; please check your spelling, and " +
		"remember to use quotations if the item is multiple words")
	ErrMethodNotAllowed = errors.New("error 405, the target resource does not support this function")
	ErrInternalServer   = errors.New("error 500, the marketplace servers have encountered an internal error " +
		"while processing this request")
)

// UnknownStatusError covers any HTTP status not in the known taxonomy.
type UnknownStatusError struct {
	Status int
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown error, HTTP code %d", e.Status)
}

// Client fetches item orders from the marketplace API. It is safe for
// concurrent use; the platform header is fixed at construction.
type Client struct {
	apiRoot  string
	platform models.Platform
	http     *http.Client
	headers  map[string]string
	logger   *utils.Logger
	retry    *utils.RetryConfig
}

// NewClient builds a Client for the given platform.
func NewClient(cfg *config.Config, platform models.Platform, logger *utils.Logger) *Client {
	return &Client{
		apiRoot:  cfg.APIRoot,
		platform: platform,
		http: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		headers: map[string]string{
			"Accept":          "application/json",
			"Accept-Language": "en",
			"Content-Type":    "application/json",
			"User-Agent":      cfg.UserAgent,
			"Platform":        string(platform),
		},
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// FetchOrders retrieves every published order for the named item along
// with the item's metadata. Transport failures are retried with
// backoff; HTTP status errors are returned as-is.
func (c *Client) FetchOrders(ctx context.Context, item string) (models.ItemInfo, []models.RawOrder, error) {
	slug := Slug(item)
	url := fmt.Sprintf("%s/items/%s/orders?include=item", c.apiRoot, slug)

	c.logger.Debug("[market] GET %s (platform=%s)", url, c.platform)

	var decoded ordersResponse
	err := c.retry.Do("fetch orders for "+slug, func() error {
		return c.getJSON(ctx, url, &decoded)
	})
	if err != nil {
		return models.ItemInfo{}, nil, err
	}

	if len(decoded.Include.Item.ItemsInSet) == 0 {
		return models.ItemInfo{}, nil, fmt.Errorf("required JSON field not found for %q", slug)
	}

	info := decoded.Include.Item.ItemsInSet[0].toItemInfo(DisplayName(slug), slug)
	orders := make([]models.RawOrder, 0, len(decoded.Payload.Orders))
	for _, dto := range decoded.Payload.Orders {
		orders = append(orders, dto.toRawOrder())
	}

	c.logger.Debug("[market] %s: %d orders fetched", slug, len(orders))
	return info, orders, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &utils.Permanent{Err: fmt.Errorf("build request: %w", err)}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return &utils.Permanent{Err: err}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &utils.Permanent{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError maps a non-200 status to its typed error.
func statusError(status int) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrItemNotFound
	case http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case http.StatusInternalServerError:
		return ErrInternalServer
	}
	return &UnknownStatusError{Status: status}
}
