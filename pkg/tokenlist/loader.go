package tokenlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arbscanner/internal/token"
)

// list is the standard token list document: {"name": "...", "tokens": [...]}.
type list struct {
	Name   string        `json:"name"`
	Tokens []token.Token `json:"tokens"`
}

// Loader resolves a list name like "gemini" to its tokens, either from
// <dir>/<name>.json or, when baseURL is set, from <baseURL>/<name>.json.
type Loader struct {
	dir        string
	baseURL    string
	httpClient *http.Client
}

func NewLoader(dir, baseURL string, timeout time.Duration) *Loader {
	return &Loader{
		dir:        dir,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Load returns the tokens of the named list in file order.
func (l *Loader) Load(ctx context.Context, name string) ([]token.Token, error) {
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid token list name: %q", name)
	}

	var (
		data []byte
		err  error
	)
	if l.baseURL != "" {
		data, err = l.fetch(ctx, l.baseURL+"/"+name+".json")
	} else {
		data, err = os.ReadFile(filepath.Join(l.dir, name+".json"))
	}
	if err != nil {
		return nil, fmt.Errorf("load token list %s: %w", name, err)
	}

	var tl list
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("decode token list %s: %w", name, err)
	}
	return tl.Tokens, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
