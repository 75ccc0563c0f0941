package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/acctmarket/backend/internal/domain/order"
	"github.com/acctmarket/backend/internal/domain/payment"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReferenceRetries bounds the regenerate-and-retry loop when a
// generated reference collides with an existing row
const maxReferenceRetries = 5

// PaymentService creates pending payments and verifies them against
// the gateway. Verification is idempotent: a payment already verified
// stays verified, and a replayed webhook is a no-op.
type PaymentService struct {
	paymentRepo payment.PaymentRepository
	orderRepo   order.CartOrderRepository
	uow         payment.UnitOfWork
	gateways    map[string]payment.Gateway
	logger      *zap.Logger

	// inFlight short-circuits concurrent verifications of the same
	// reference before they contend on the row lock
	inFlight sync.Map
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payment.PaymentRepository,
	orderRepo order.CartOrderRepository,
	uow payment.UnitOfWork,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		uow:         uow,
		gateways:    make(map[string]payment.Gateway),
		logger:      logger,
	}
}

// RegisterGateway registers a payment gateway adapter by name
func (s *PaymentService) RegisterGateway(gw payment.Gateway) {
	s.gateways[gw.Name()] = gw
}

// GatewayByName returns a registered gateway adapter
func (s *PaymentService) GatewayByName(name string) (payment.Gateway, bool) {
	gw, ok := s.gateways[name]
	return gw, ok
}

// Create opens the payment for an order. Each order owns at most one
// payment row: a pending one is returned as-is, a failed one is
// reopened under a fresh reference, and a verified one rejects the
// request. The reference is random; if the insert hits the unique
// constraint the reference is regenerated and the insert retried.
func (s *PaymentService) Create(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error) {
	gateway := req.Gateway
	if gateway == "" {
		gateway = "paystack"
	}
	if _, ok := s.gateways[gateway]; !ok {
		return nil, shared.NewDomainError("UNKNOWN_GATEWAY", fmt.Sprintf("Payment gateway %s is not configured", gateway))
	}

	cartOrder, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if cartOrder.PaidStatus {
		return nil, shared.NewDomainError("ORDER_ALREADY_PAID", "Order has already been paid")
	}

	existing, err := s.paymentRepo.FindByOrder(ctx, cartOrder.ID)
	switch {
	case err == nil:
		return s.resumePayment(ctx, existing)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	p, err := payment.NewPayment(cartOrder.ID, req.UserID, cartOrder.PriceMoney(), gateway)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err = s.paymentRepo.Create(ctx, p)
		if err == nil {
			break
		}
		if errors.Is(err, payment.ErrOrderPaymentExists) {
			// Lost the insert race to a concurrent request; hand back
			// the row that won.
			winner, findErr := s.paymentRepo.FindByOrder(ctx, cartOrder.ID)
			if findErr != nil {
				return nil, findErr
			}
			return s.resumePayment(ctx, winner)
		}
		if !errors.Is(err, payment.ErrDuplicateReference) {
			return nil, err
		}
		if attempt >= maxReferenceRetries {
			return nil, fmt.Errorf("allocate payment reference after %d attempts: %w", attempt+1, err)
		}
		s.logger.Warn("payment reference collision, regenerating",
			zap.String("order_id", cartOrder.ID.String()),
			zap.Int("attempt", attempt+1))
		if err := p.RegenerateReference(); err != nil {
			return nil, err
		}
	}

	s.logger.Info("payment created",
		zap.String("payment_id", p.ID.String()),
		zap.String("order_id", p.OrderID.String()),
		zap.String("reference", p.Reference))

	response := ToPaymentResponse(p)
	return &response, nil
}

// resumePayment hands back the order's existing payment row: pending
// ones unchanged, failed ones reopened under a fresh reference.
func (s *PaymentService) resumePayment(ctx context.Context, p *payment.Payment) (*PaymentResponse, error) {
	switch p.Status {
	case payment.PaymentStatusVerified:
		return nil, shared.NewDomainError("ORDER_ALREADY_PAID", "Order has already been paid")
	case payment.PaymentStatusFailed:
		if err := p.Reopen(); err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, p); err != nil {
			return nil, err
		}
		s.logger.Info("failed payment reopened",
			zap.String("payment_id", p.ID.String()),
			zap.String("order_id", p.OrderID.String()),
			zap.String("reference", p.Reference))
	}
	response := ToPaymentResponse(p)
	return &response, nil
}

// GetByReference retrieves a payment by its reference
func (s *PaymentService) GetByReference(ctx context.Context, reference string) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(p)
	return &response, nil
}

// GetByOrder retrieves the payment owned by an order
func (s *PaymentService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(p)
	return &response, nil
}

// HandleWebhook processes a gateway webhook delivery. The signature is
// checked against the raw payload before anything is parsed. Only
// charge success events trigger verification; everything else is
// acknowledged and ignored. Replayed deliveries are no-ops because
// Verify is idempotent.
func (s *PaymentService) HandleWebhook(ctx context.Context, gatewayName string, payload []byte, signature string) error {
	gw, ok := s.gateways[gatewayName]
	if !ok {
		return shared.NewDomainError("UNKNOWN_GATEWAY", fmt.Sprintf("Payment gateway %s is not configured", gatewayName))
	}
	if !gw.VerifyWebhookSignature(payload, signature) {
		return shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return shared.NewDomainError("INVALID_PAYLOAD", "Webhook payload could not be parsed")
	}

	if event.Event != "charge.success" {
		s.logger.Debug("ignoring webhook event",
			zap.String("gateway", gatewayName),
			zap.String("event", event.Event))
		return nil
	}
	if event.Data.Reference == "" {
		return shared.NewDomainError("INVALID_PAYLOAD", "Webhook payload is missing a transaction reference")
	}

	if _, err := s.Verify(ctx, event.Data.Reference); err != nil {
		// A delivery racing a manual verification loses the in-flight
		// guard; the winner settles the payment, so drop this one.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "VERIFICATION_IN_PROGRESS" {
			s.logger.Info("webhook skipped, verification already running",
				zap.String("reference", event.Data.Reference))
			return nil
		}
		return err
	}
	return nil
}

// Verify asks the gateway about a payment and settles its status.
// Returns true only when the gateway confirmed success AND the
// confirmed amount matches the expected amount to the minor unit.
// A gateway transport error leaves the payment pending; a decline or
// amount mismatch marks it failed and leaves the order untouched.
func (s *PaymentService) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot be empty")
	}

	if _, loaded := s.inFlight.LoadOrStore(reference, struct{}{}); loaded {
		return nil, shared.NewDomainError("VERIFICATION_IN_PROGRESS", "Payment verification is already in progress")
	}
	defer s.inFlight.Delete(reference)

	p, err := s.paymentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if p.Verified() {
		return &VerifyResponse{Reference: reference, Verified: true, Status: p.Status.String()}, nil
	}

	gw, ok := s.gateways[p.Gateway]
	if !ok {
		return nil, shared.NewDomainError("UNKNOWN_GATEWAY", fmt.Sprintf("Payment gateway %s is not configured", p.Gateway))
	}

	// Gateway round trip happens before the transaction so the row
	// lock is never held across a network call.
	result, err := gw.VerifyTransaction(ctx, reference)
	if err != nil {
		s.logger.Error("gateway verification call failed",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, err
	}

	var response VerifyResponse
	err = s.uow.Execute(ctx, func(ctx context.Context, payments payment.PaymentRepository, orders order.CartOrderRepository) error {
		locked, err := payments.FindByReferenceForUpdate(ctx, reference)
		if err != nil {
			return err
		}

		// A concurrent verification may have settled the payment
		// between the unlocked read and the locked one.
		if locked.Verified() {
			response = VerifyResponse{Reference: reference, Verified: true, Status: locked.Status.String()}
			return nil
		}

		expected := locked.AmountMoney().MinorUnits()
		if result.Success && result.AmountMinor == expected {
			locked.MarkVerified()
			if err := payments.Save(ctx, locked); err != nil {
				return err
			}
			cartOrder, err := orders.FindByID(ctx, locked.OrderID)
			if err != nil {
				return err
			}
			cartOrder.MarkPaid()
			if err := orders.Save(ctx, cartOrder); err != nil {
				return err
			}
			s.logger.Info("payment verified",
				zap.String("reference", reference),
				zap.String("order_id", locked.OrderID.String()))
		} else {
			locked.MarkFailed()
			if err := payments.Save(ctx, locked); err != nil {
				return err
			}
			s.logger.Warn("payment verification failed",
				zap.String("reference", reference),
				zap.Bool("gateway_success", result.Success),
				zap.Int64("gateway_amount_minor", result.AmountMinor),
				zap.Int64("expected_amount_minor", expected))
		}

		response = VerifyResponse{Reference: reference, Verified: locked.Verified(), Status: locked.Status.String()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
