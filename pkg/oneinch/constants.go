package oneinch

import "errors"

// quotePath is relative to the configured base URL, e.g. https://api.1inch.dev/swap/v6.0
const quotePath = "/%d/quote?src=%s&dst=%s&amount=%s"

var (
	// ErrNoRoute means the aggregator answered but could not convert between the tokens.
	ErrNoRoute = errors.New("no quote route")
	// ErrRateLimited is returned on HTTP 429.
	ErrRateLimited = errors.New("rate limited")
)
