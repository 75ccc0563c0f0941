package payment

import "context"

// GatewayResult is the normalized outcome of a gateway verification
// call. AmountMinor is in the gateway's smallest currency unit (kobo
// for NGN) and is compared against the expected amount, never trusted
// as the amount owed.
type GatewayResult struct {
	Success     bool
	AmountMinor int64
	Currency    string
	Channel     string
	PaidAt      string
}

// Gateway is the port a payment provider adapter implements.
// VerifyTransaction returns an error only for transport or protocol
// failures; a declined transaction is a normal result with
// Success=false.
type Gateway interface {
	Name() string
	VerifyTransaction(ctx context.Context, reference string) (*GatewayResult, error)
	VerifyWebhookSignature(payload []byte, signature string) bool
}
