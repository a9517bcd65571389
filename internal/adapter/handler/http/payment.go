package http

import (
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type verifyPaymentResponse struct {
	PaymentStatus string          `json:"payment_status"`
	OrderID       uint64          `json:"order_id"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        string          `json:"paid_at,omitempty"`
}

// VerifyPayment drives the reconciler from an external trigger (gateway
// redirect or polling client). Calling it again for the same reference
// returns the stored result.
func (ph *PaymentHandler) VerifyPayment(ctx *gin.Context) {
	reference := ctx.Query("reference")
	if reference == "" {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := ph.service.ConfirmPayment(ctx, reference)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, verifyPaymentResponse{
		PaymentStatus: string(result.PaymentStatus),
		OrderID:       result.OrderID,
		Reference:     result.Reference,
		Amount:        result.Amount,
		PaidAt:        result.PaidAt,
	})
}
