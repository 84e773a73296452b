package oneinch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"arbscanner/internal/token"
)

type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Quote asks the aggregator how much of `to` it would return for amount of `from`.
// An explicit "cannot convert" answer is reported as ErrNoRoute.
func (c *RESTClient) Quote(ctx context.Context, from, to token.Token, amount *big.Int) (*big.Int, error) {
	endpoint := c.baseURL + fmt.Sprintf(quotePath, from.ChainID, from.Address, to.Address, amount.String())

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, bytes.TrimSpace(body))
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrNoRoute, describe(body))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("1inch error: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	// Legacy endpoints answer 200 with an error envelope.
	var apiErr ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s", ErrNoRoute, apiErr.Description)
	}

	var quote QuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out, ok := new(big.Int).SetString(quote.Amount(), 10)
	if !ok || out.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount: %q", quote.Amount())
	}
	return out, nil
}

func describe(body []byte) string {
	var apiErr ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Description != "" {
		return apiErr.Description
	}
	return string(bytes.TrimSpace(body))
}
