package arbitrage

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOpportunity() Opportunity {
	return Opportunity{
		Start:        dai,
		Candidate:    t1,
		StartAmount:  big.NewInt(1000),
		Intermediate: big.NewInt(2000),
		Final:        big.NewInt(1050),
		Percent:      "5.000",
	}
}

// go test -v --run TestDiscordReporter
func TestDiscordReporter(t *testing.T) {
	var content string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		content = payload["content"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewDiscordReporter(srv.URL).Report(context.Background(), sampleOpportunity()))
	assert.Contains(t, content, "FOUND: DAI -> T1 (+5.000%)")
	assert.Contains(t, content, "1000 -> 2000 -> 1050")
}

// go test -v --run TestDiscordReporterError
func TestDiscordReporterError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	assert.Error(t, NewDiscordReporter(srv.URL).Report(context.Background(), sampleOpportunity()))
}
