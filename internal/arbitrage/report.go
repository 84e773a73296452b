package arbitrage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"arbscanner/internal/token"
)

// Opportunity is a round trip that came back with more than it started with.
type Opportunity struct {
	Start        token.Token
	Candidate    token.Token
	StartAmount  *big.Int
	Intermediate *big.Int
	Final        *big.Int
	Percent      string
}

// String renders the two line console report.
func (o Opportunity) String() string {
	return fmt.Sprintf("FOUND: %s -> %s (+%s%%) (%s)\n       %s -> %s -> %s\n",
		o.Start.Symbol, o.Candidate.Symbol, o.Percent, o.Candidate.Address,
		o.StartAmount.String(), o.Intermediate.String(), o.Final.String())
}

// Reporter publishes an opportunity somewhere a human will see it.
type Reporter interface {
	Report(ctx context.Context, o Opportunity) error
}

// ConsoleReporter prints opportunities to w, normally stdout.
type ConsoleReporter struct {
	w io.Writer
}

func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (c *ConsoleReporter) Report(_ context.Context, o Opportunity) error {
	_, err := io.WriteString(c.w, o.String())
	return err
}

// DiscordReporter posts opportunities to a Discord webhook.
type DiscordReporter struct {
	webhookURL string
	client     *http.Client
}

func NewDiscordReporter(webhookURL string) *DiscordReporter {
	return &DiscordReporter{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DiscordReporter) Report(ctx context.Context, o Opportunity) error {
	body, err := json.Marshal(map[string]string{
		"content": "**Arbitrage opportunity**\n```\n" + o.String() + "```",
	})
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("discord: send request: %w", err)
	}
	defer resp.Body.Close()

	// Discord returns 204 No Content on success.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("discord: unexpected status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
