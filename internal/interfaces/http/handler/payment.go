package handler

import (
	"io"
	"net/http"

	paymentapp "github.com/acctmarket/backend/internal/application/payment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paystackSignatureHeader carries the HMAC of the webhook body
const paystackSignatureHeader = "x-paystack-signature"

// PaymentHandler handles payment creation, verification and webhooks
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
	logger         *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Create opens a pending payment for an order
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req paymentapp.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.UserID = userID

	payment, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// GetByReference returns a payment by its reference
func (h *PaymentHandler) GetByReference(c *gin.Context) {
	payment, err := h.paymentService.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// GetByOrder returns the payment owned by an order
func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	payment, err := h.paymentService.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Verify triggers verification of a payment against its gateway. Safe
// to call repeatedly; an already verified payment stays verified.
func (h *PaymentHandler) Verify(c *gin.Context) {
	result, err := h.paymentService.Verify(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PaystackWebhook receives gateway event deliveries. Paystack retries
// on non-2xx, so every delivery is acknowledged with 200 once read;
// failures are logged and verification itself is idempotent.
func (h *PaymentHandler) PaystackWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Unable to read webhook payload")
		return
	}
	signature := c.GetHeader(paystackSignatureHeader)

	if err := h.paymentService.HandleWebhook(c.Request.Context(), "paystack", payload, signature); err != nil {
		h.logger.Warn("paystack webhook processing failed",
			zap.String("request_id", getRequestID(c)),
			zap.Error(err))
	}

	c.Status(http.StatusOK)
}
