package http

import (
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	Handler
	service port.Service
}

func NewCustomerHandler(service port.Service, logger *zap.Logger) (*CustomerHandler, error) {
	return &CustomerHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type customerStatsResponse struct {
	CustomerEmail string          `json:"customer_email"`
	TotalOrders   int64           `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LoyaltyPoints int64           `json:"loyalty_points"`
}

// GetCustomerStats returns the running order/spend/loyalty totals for one
// customer. Totals grow at order creation; a payment confirmation never
// touches them again.
func (ch *CustomerHandler) GetCustomerStats(ctx *gin.Context) {
	email := ctx.Param("email")
	if email == "" {
		ch.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	stats, err := ch.service.GetCustomerStats(ctx, email)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, customerStatsResponse{
		CustomerEmail: stats.CustomerEmail,
		TotalOrders:   stats.TotalOrders,
		TotalSpent:    stats.TotalSpent,
		LoyaltyPoints: stats.LoyaltyPoints,
	})
}
