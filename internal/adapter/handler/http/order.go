package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createOrderRequest struct {
	ProductID     uint64 `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

type createOrderResponse struct {
	OrderID    uint64          `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.PlaceOrder(ctx, req.ProductID, req.Quantity,
		req.CustomerName, req.CustomerEmail)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, createOrderResponse{
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice,
	}, http.StatusCreated)
}

type orderResponse struct {
	ID               uint64          `json:"id"`
	ProductID        uint64          `json:"product_id"`
	Quantity         int             `json:"quantity"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"payment_status,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:               o.ID,
		ProductID:        o.ProductID,
		Quantity:         o.Quantity,
		TotalPrice:       o.TotalPrice,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentReference: o.PaymentReference,
		CreatedAt:        o.CreatedAt,
	}
}

type listOrdersResponse struct {
	Orders     []orderResponse    `json:"orders"`
	Pagination paginationResponse `json:"pagination"`
}

func (oh *OrderHandler) ListOrdersByCustomer(ctx *gin.Context) {
	email := ctx.Query("email")
	query := paginationQuery{}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	page := query.normalized()

	list, total, err := oh.service.GetOrdersByCustomer(ctx, email, page)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}

	oh.handleSuccess(ctx, listOrdersResponse{
		Orders:     result,
		Pagination: newPagination(page, total),
	})
}

type startPaymentRequest struct {
	CallbackURL string `json:"callback_url"`
}

type startPaymentResponse struct {
	OrderID     uint64          `json:"order_id"`
	Reference   string          `json:"reference"`
	CheckoutURL string          `json:"checkout_url"`
	Amount      decimal.Decimal `json:"amount"`
}

func (oh *OrderHandler) StartPayment(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	req := startPaymentRequest{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
			oh.handleValidationError(ctx, err)
			return
		}
	}

	intent, err := oh.service.StartPayment(ctx, orderID, req.CallbackURL)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, startPaymentResponse{
		OrderID:     intent.OrderID,
		Reference:   intent.Reference,
		CheckoutURL: intent.CheckoutURL,
		Amount:      intent.Amount,
	})
}
