package paystack

// verifyResponse is the envelope Paystack returns from the transaction
// verify endpoint
type verifyResponse struct {
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    verifyData `json:"data"`
}

// verifyData is the transaction detail inside a verify response. Amount
// is in the currency's minor unit (kobo for NGN).
type verifyData struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Channel         string `json:"channel"`
	PaidAt          string `json:"paid_at"`
	GatewayResponse string `json:"gateway_response"`
}

// errorResponse is returned with a non-2xx status code
type errorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}
