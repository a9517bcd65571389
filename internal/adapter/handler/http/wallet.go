package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

type WalletHandler struct {
	Handler
	service port.Service
}

func NewWalletHandler(service port.Service, logger *zap.Logger) (*WalletHandler, error) {
	return &WalletHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// walletPostRequest covers both POST shapes: a transaction when Action is
// set, a wallet creation otherwise.
type walletPostRequest struct {
	Action        string  `json:"action"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	CustomerEmail string  `json:"customer_email"`
	Balance       float64 `json:"balance"`
}

type walletTransactionResponse struct {
	NewBalance decimal.Decimal `json:"new_balance"`
}

type walletCreatedResponse struct {
	WalletID uint64 `json:"wallet_id"`
}

func (wh *WalletHandler) Post(ctx *gin.Context) {
	req := walletPostRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		wh.handleValidationError(ctx, err)
		return
	}

	switch req.Action {
	case "add", "withdraw":
		amount, err := decimal.NewFromFloat64(req.Amount)
		if err != nil {
			wh.handleValidationError(ctx, err)
			return
		}
		kind := domain.TransactionCredit
		if req.Action == "withdraw" {
			kind = domain.TransactionDebit
		}

		wallet, err := wh.service.ApplyWalletTransaction(ctx, req.Email, amount, kind, req.Description)
		if err != nil {
			wh.handleError(ctx, err)
			return
		}
		wh.handleSuccess(ctx, walletTransactionResponse{NewBalance: wallet.Balance})

	case "":
		balance, err := decimal.NewFromFloat64(req.Balance)
		if err != nil {
			wh.handleValidationError(ctx, err)
			return
		}
		wallet, err := wh.service.CreateWallet(ctx, req.CustomerEmail, balance)
		if err != nil {
			wh.handleError(ctx, err)
			return
		}
		wh.handleSuccessWithStatus(ctx, walletCreatedResponse{WalletID: wallet.ID}, http.StatusCreated)

	default:
		wh.handleValidationError(ctx, domain.ErrBadRequest)
	}
}

type walletTransactionItem struct {
	ID            uint64          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"type"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"reference_type"`
	CreatedAt     time.Time       `json:"created_at"`
}

type walletResponse struct {
	CustomerEmail string                  `json:"customer_email"`
	Balance       decimal.Decimal         `json:"balance"`
	Exists        bool                    `json:"exists"`
	Transactions  []walletTransactionItem `json:"transactions,omitempty"`
}

func (wh *WalletHandler) GetWallet(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		wh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	wallet, transactions, err := wh.service.GetWallet(ctx, email)
	if err != nil {
		// An absent wallet reads as a zero-balance placeholder.
		if errors.Is(err, domain.ErrDataNotFound) {
			wh.handleSuccess(ctx, walletResponse{
				CustomerEmail: email,
				Balance:       decimal.Zero,
				Exists:        false,
			})
			return
		}
		wh.handleError(ctx, err)
		return
	}

	items := make([]walletTransactionItem, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, walletTransactionItem{
			ID:            t.ID,
			Amount:        t.Amount,
			Kind:          string(t.Kind),
			Description:   t.Description,
			ReferenceType: t.ReferenceType,
			CreatedAt:     t.CreatedAt,
		})
	}

	wh.handleSuccess(ctx, walletResponse{
		CustomerEmail: wallet.CustomerEmail,
		Balance:       wallet.Balance,
		Exists:        true,
		Transactions:  items,
	})
}
