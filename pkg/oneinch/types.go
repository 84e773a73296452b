package oneinch

// QuoteResponse covers both the current and the legacy quote payloads.
type QuoteResponse struct {
	DstAmount     string `json:"dstAmount"`     // v5.2+ field
	ToTokenAmount string `json:"toTokenAmount"` // v3/v4 field
	Gas           int64  `json:"gas,omitempty"`
}

// Amount returns whichever destination amount field the API filled in.
func (r QuoteResponse) Amount() string {
	if r.DstAmount != "" {
		return r.DstAmount
	}
	return r.ToTokenAmount
}

// ErrorResponse is the body 1inch sends with 4xx answers.
type ErrorResponse struct {
	StatusCode  int    `json:"statusCode"`
	Error       string `json:"error"`
	Description string `json:"description"`
	RequestID   string `json:"requestId"`
}
