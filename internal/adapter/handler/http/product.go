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

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type accountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createProductRequest struct {
	Name         string           `json:"name" binding:"required"`
	Category     string           `json:"category" binding:"required"`
	Followers    int              `json:"followers"`
	Price        float64          `json:"price" binding:"required"`
	TutorialLink string           `json:"tutorialLink"`
	Status       string           `json:"status"`
	Accounts     []accountRequest `json:"accounts" binding:"required"`
}

type createProductResponse struct {
	ProductID     uint64 `json:"product_id"`
	AccountsAdded int    `json:"accounts_added"`
}

func (ph *ProductHandler) CreateProduct(ctx *gin.Context) {
	req := createProductRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	price, err := decimal.NewFromFloat64(req.Price)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	accounts := make([]*domain.Account, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		accounts = append(accounts, &domain.Account{
			Username: a.Username,
			Password: a.Password,
		})
	}

	product := &domain.Product{
		Name:         req.Name,
		Category:     req.Category,
		Followers:    req.Followers,
		Price:        price,
		TutorialLink: req.TutorialLink,
		Status:       domain.ProductStatus(req.Status),
	}

	created, err := ph.service.CreateProduct(ctx, product, accounts)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, createProductResponse{
		ProductID:     created.ID,
		AccountsAdded: created.StockCount,
	}, http.StatusCreated)
}

type productResponse struct {
	ID                uint64          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Followers         int             `json:"followers"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	TutorialLink      string          `json:"tutorial_link,omitempty"`
	Status            string          `json:"status"`
	AvailableAccounts *int            `json:"available_accounts,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func newProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Followers:    p.Followers,
		Quantity:     p.StockCount,
		Price:        p.Price,
		TutorialLink: p.TutorialLink,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product, available, err := ph.service.GetProduct(ctx, productID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	resp := newProductResponse(product)
	resp.AvailableAccounts = &available
	ph.handleSuccess(ctx, resp)
}

type listProductsResponse struct {
	Products   []productResponse  `json:"products"`
	Pagination paginationResponse `json:"pagination"`
}

func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	query := paginationQuery{}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}
	page := query.normalized()

	list, total, err := ph.service.ListProducts(ctx, page, ctx.Query("search"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]productResponse, 0, len(list))
	for _, p := range list {
		result = append(result, newProductResponse(p))
	}

	ph.handleSuccess(ctx, listProductsResponse{
		Products:   result,
		Pagination: newPagination(page, total),
	})
}

type updateProductRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Followers    *int     `json:"followers"`
	Price        *float64 `json:"price"`
	TutorialLink *string  `json:"tutorialLink"`
	Status       *string  `json:"status"`
}

func (ph *ProductHandler) UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	req := updateProductRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	update := domain.ProductUpdate{
		Name:         req.Name,
		Category:     req.Category,
		Followers:    req.Followers,
		TutorialLink: req.TutorialLink,
	}
	if req.Price != nil {
		price, err := decimal.NewFromFloat64(*req.Price)
		if err != nil {
			ph.handleValidationError(ctx, err)
			return
		}
		update.Price = &price
	}
	if req.Status != nil {
		status := domain.ProductStatus(*req.Status)
		update.Status = &status
	}

	product, err := ph.service.UpdateProduct(ctx, productID, update)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResponse(product))
}

func (ph *ProductHandler) DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	if err := ph.service.DeleteProduct(ctx, productID); err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
