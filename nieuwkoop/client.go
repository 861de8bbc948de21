// Package nieuwkoop wraps the Nieuwkoop Europe customer API: changed-item
// feed, per-item price/stock lookups and item images. Thin HTTP client with
// basic auth; no retries — a failed call is fatal for the single item and the
// caller decides whether the batch continues.
package nieuwkoop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const DefaultBaseURL = "https://customerapi.nieuwkoop-europe.com"

// FetchError is a typed upstream failure: non-2xx status or malformed payload.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("nieuwkoop: %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("nieuwkoop: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

var ErrNotFound = errors.New("nieuwkoop: not found")

type Client struct {
	BaseURL  string
	Username string
	Password string

	http *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientFromEnv reads NIEUWKOOP_BASE_URL / NIEUWKOOP_USERNAME / NIEUWKOOP_PASSWORD.
func NewClientFromEnv() *Client {
	return NewClient(
		os.Getenv("NIEUWKOOP_BASE_URL"),
		os.Getenv("NIEUWKOOP_USERNAME"),
		os.Getenv("NIEUWKOOP_PASSWORD"),
	)
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Err: err}
	}
	return nil
}

// FetchChangedItems returns every item modified since the cutoff. A far-past
// cutoff forces the full catalog.
func (c *Client) FetchChangedItems(ctx context.Context, since time.Time) ([]Item, error) {
	q := url.Values{}
	q.Set("sysmodified", since.UTC().Format(time.RFC3339))

	var items []Item
	if err := c.get(ctx, "items", "/items", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchPrice looks up the sales price for one item code.
func (c *Client) FetchPrice(ctx context.Context, code string) (*PriceInfo, error) {
	var prices []PriceInfo
	q := url.Values{}
	q.Set("itemcode", code)
	if err := c.get(ctx, "prices", "/prices", q, &prices); err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, ErrNotFound
	}
	return &prices[0], nil
}

// FetchStock looks up current availability for one item code.
func (c *Client) FetchStock(ctx context.Context, code string) (*StockInfo, error) {
	var stock []StockInfo
	q := url.Values{}
	q.Set("itemcode", code)
	if err := c.get(ctx, "stock", "/stock", q, &stock); err != nil {
		return nil, err
	}
	if len(stock) == 0 {
		return nil, ErrNotFound
	}
	return &stock[0], nil
}

// FetchItemDetail bundles item, price and stock for one code.
func (c *Client) FetchItemDetail(ctx context.Context, code string) (*ItemDetail, error) {
	var items []Item
	q := url.Values{}
	q.Set("itemcode", code)
	if err := c.get(ctx, "item", "/items", q, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	detail := &ItemDetail{Item: items[0]}

	price, err := c.FetchPrice(ctx, code)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if price != nil {
		detail.Price = *price
	}

	stock, err := c.FetchStock(ctx, code)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if stock != nil {
		detail.Stock = *stock
	}

	return detail, nil
}

// FetchImage returns the raw image bytes and content type for an item code.
func (c *Client) FetchImage(ctx context.Context, code string) ([]byte, string, error) {
	u := fmt.Sprintf("%s/items/%s/image", c.BaseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", &FetchError{Op: "image", Err: err}
	}
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &FetchError{Op: "image", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &FetchError{Op: "image", Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &FetchError{Op: "image", Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}
