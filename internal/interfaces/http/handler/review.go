package handler

import (
	catalogapp "github.com/acctmarket/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create submits a review. The caller identity overrides whatever the
// body may claim.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req catalogapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.UserID = userID

	review, err := h.reviewService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}
