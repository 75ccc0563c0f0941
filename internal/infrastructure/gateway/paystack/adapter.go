package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/acctmarket/backend/internal/domain/payment"
	"github.com/acctmarket/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	gatewayName     = "paystack"
	verifyPathFmt   = "/transaction/verify/%s"
	successStatus   = "success"
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 1 << 20
)

// Adapter implements the payment gateway interface against the Paystack
// REST API
type Adapter struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdapter creates a new Paystack adapter from gateway configuration
func NewAdapter(cfg config.PaystackConfig, logger *zap.Logger) (*Adapter, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("paystack: secret key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Adapter{
		secretKey: cfg.SecretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// Name returns the gateway identifier used for payment routing
func (a *Adapter) Name() string {
	return gatewayName
}

// VerifyTransaction queries Paystack for the outcome of a transaction.
// A declined or abandoned transaction is a normal result with
// Success=false; an error return means the outcome is unknown.
func (a *Adapter) VerifyTransaction(ctx context.Context, reference string) (*payment.GatewayResult, error) {
	if reference == "" {
		return nil, fmt.Errorf("paystack: reference is required")
	}

	path := fmt.Sprintf(verifyPathFmt, url.PathEscape(reference))
	body, err := a.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	var resp verifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("paystack: failed to parse verify response: %w", err)
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack: verify request rejected: %s", resp.Message)
	}

	result := &payment.GatewayResult{
		Success:     resp.Data.Status == successStatus,
		AmountMinor: resp.Data.Amount,
		Currency:    resp.Data.Currency,
		Channel:     resp.Data.Channel,
		PaidAt:      resp.Data.PaidAt,
	}

	a.logger.Debug("Paystack transaction verified",
		zap.String("reference", reference),
		zap.String("gateway_status", resp.Data.Status),
		zap.Int64("amount_minor", resp.Data.Amount),
	)

	return result, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header value
// against an HMAC-SHA512 of the raw payload keyed with the secret key
func (a *Adapter) VerifyWebhookSignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(a.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// doRequest performs an authenticated request to the Paystack API
func (a *Adapter) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("paystack: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("paystack: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("paystack: HTTP %d: %s", resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("paystack: HTTP %d", resp.StatusCode)
	}

	return body, nil
}

// Ensure Adapter implements the gateway interface
var _ payment.Gateway = (*Adapter)(nil)
