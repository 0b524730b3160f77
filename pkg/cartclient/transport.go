package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HTTPTransport talks JSON to the storefront API. A circuit breaker sits in
// front of the cart endpoints: once the server has failed repeatedly the
// breaker opens and calls fail fast, which the manager treats like any other
// transport failure and falls back to local state.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]Line]
}

// NewHTTPTransport builds a transport for the given base URL. When client
// is nil a default one is used, with a cookie jar for the auth cookie and a
// request timeout so a hung server engages the fallback instead of blocking
// the session forever.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		jar, _ := cookiejar.New(nil)
		client = &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		}
	}

	breaker := gobreaker.NewCircuitBreaker[[]Line](gobreaker.Settings{
		Name:    "kurv-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &HTTPTransport{
		baseURL: baseURL,
		client:  client,
		breaker: breaker,
	}
}

type addLineRequest struct {
	ProductID int64 `json:"produktId"`
	Quantity  int   `json:"antal"`
}

type setQuantityRequest struct {
	Quantity int `json:"antal"`
}

// Identify asks the server who we are. False without error means the
// session is anonymous; an error means the check could not complete.
func (t *HTTPTransport) Identify(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/api/auth/me", nil)
	if err != nil {
		return false, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}

func (t *HTTPTransport) FetchCart(ctx context.Context) ([]Line, error) {
	return t.doLines(ctx, http.MethodGet, "/api/kurv", nil)
}

func (t *HTTPTransport) AddLine(ctx context.Context, productID int64, quantity int) ([]Line, error) {
	return t.doLines(ctx, http.MethodPost, "/api/kurv/add", addLineRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (t *HTTPTransport) SetQuantity(ctx context.Context, productID int64, quantity int) ([]Line, error) {
	path := fmt.Sprintf("/api/kurv/item/%d", productID)
	return t.doLines(ctx, http.MethodPut, path, setQuantityRequest{Quantity: quantity})
}

func (t *HTTPTransport) RemoveLine(ctx context.Context, productID int64) ([]Line, error) {
	path := fmt.Sprintf("/api/kurv/item/%d", productID)
	return t.doLines(ctx, http.MethodDelete, path, nil)
}

func (t *HTTPTransport) ClearCart(ctx context.Context) error {
	_, err := t.breaker.Execute(func() ([]Line, error) {
		resp, err := t.do(ctx, http.MethodDelete, "/api/kurv", nil)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("clear cart: unexpected status %d", resp.StatusCode)
		}
		return nil, nil
	})
	return err
}

func (t *HTTPTransport) doLines(ctx context.Context, method, path string, body interface{}) ([]Line, error) {
	return t.breaker.Execute(func() ([]Line, error) {
		resp, err := t.do(ctx, method, path, body)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
		}

		var lines []Line
		if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
			return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
		return lines, nil
	})
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return t.client.Do(req)
}
