// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jrvaldez/product-catalog/internal/models"
)

// ErrUnexpected is returned for any transport or server failure that does
// not carry a structured 400 envelope.
var ErrUnexpected = errors.New("an unexpected error occurred")

// Client is the HTTP product repository. All blocking calls take a context.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches the full catalog, unwrapping the {"data": [...]} envelope.
func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var envelope models.DataResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}

	return envelope.Data, nil
}

// GetByID returns nil, nil when the product cannot be fetched for any
// reason; callers treat that as "not found".
func (c *Client) GetByID(ctx context.Context, id string) (*models.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products/"+id, nil)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var product models.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, nil
	}

	return &product, nil
}

func (c *Client) Create(ctx context.Context, product *models.Product) (*models.APIResult, error) {
	return c.send(ctx, http.MethodPost, "/products", product)
}

func (c *Client) Update(ctx context.Context, product *models.Product) (*models.APIResult, error) {
	return c.send(ctx, http.MethodPut, "/products/"+product.ID, product)
}

func (c *Client) Delete(ctx context.Context, id string) (*models.APIResult, error) {
	return c.send(ctx, http.MethodDelete, "/products/"+id, nil)
}

// ExistsByID backs the async uniqueness check.
func (c *Client) ExistsByID(ctx context.Context, id string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products/verification/"+id, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, c.decodeError(resp)
	}

	var exists bool
	if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
		return false, fmt.Errorf("failed to decode verification result: %w", err)
	}

	return exists, nil
}

func (c *Client) send(ctx context.Context, method, path string, product *models.Product) (*models.APIResult, error) {
	resp, err := c.do(ctx, method, path, product)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Debug("Product request failed")
		return nil, ErrUnexpected
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.decodeError(resp)
	}

	var result models.APIResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ErrUnexpected
	}

	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// decodeError maps an HTTP 400 to its structured envelope; everything else
// collapses to ErrUnexpected.
func (c *Client) decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusBadRequest {
		var apiErr models.APIError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return &apiErr
		}
	}
	return ErrUnexpected
}
