package oneinch

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arbscanner/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dai  = token.Token{Symbol: "DAI", ChainID: 1, Address: "0x6b175474e89094c44da98b954eedeac495271d0f"}
	usdc = token.Token{Symbol: "USDC", ChainID: 1, Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"}
)

func newTestServer(t *testing.T, h http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRESTClient(srv.URL+"/", "key", 2*time.Second)
}

// go test -v --run TestQuote
func TestQuote(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/quote", r.URL.Path)
		assert.Equal(t, dai.Address, r.URL.Query().Get("src"))
		assert.Equal(t, usdc.Address, r.URL.Query().Get("dst"))
		assert.Equal(t, "1000000000000000000000", r.URL.Query().Get("amount"))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"dstAmount":"1000123456"}`))
	})

	amt, _ := new(big.Int).SetString("1000000000000000000000", 10)
	got, err := client.Quote(context.Background(), dai, usdc, amt)
	require.NoError(t, err)
	assert.Equal(t, "1000123456", got.String())
}

// go test -v --run TestQuoteLegacyField
func TestQuoteLegacyField(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"toTokenAmount":"123456789012345678901234567890"}`))
	})

	got, err := client.Quote(context.Background(), dai, usdc, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", got.String())
}

// go test -v --run TestQuoteNoRoute
func TestQuoteNoRoute(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http 400",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"statusCode":400,"error":"Bad Request","description":"insufficient liquidity"}`))
			},
		},
		{
			name: "error envelope with 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"statusCode":400,"description":"cannot estimate"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, tt.handler)
			_, err := client.Quote(context.Background(), dai, usdc, big.NewInt(1))
			require.ErrorIs(t, err, ErrNoRoute)
		})
	}
}

// go test -v --run TestQuoteFailures
func TestQuoteFailures(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		_, err := client.Quote(context.Background(), dai, usdc, big.NewInt(1))
		require.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.Quote(context.Background(), dai, usdc, big.NewInt(1))
		require.Error(t, err)
	})

	t.Run("garbage amount", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"dstAmount":"1.5"}`))
		})
		_, err := client.Quote(context.Background(), dai, usdc, big.NewInt(1))
		require.Error(t, err)
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := NewRESTClient(srv.URL, "", time.Second)
		_, err := client.Quote(context.Background(), dai, usdc, big.NewInt(1))
		require.Error(t, err)
	})
}
