package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,
	domain.ErrValidation:    http.StatusBadRequest,

	domain.ErrInsufficientStock:   http.StatusBadRequest,
	domain.ErrInsufficientBalance: http.StatusBadRequest,
	domain.ErrProductInUse:        http.StatusConflict,
	domain.ErrOrderNotPayable:     http.StatusUnprocessableEntity,

	domain.ErrGateway: http.StatusBadGateway,
	domain.ErrRowBusy: http.StatusConflict,
	domain.ErrStorage: http.StatusInternalServerError,
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps a domain error to an HTTP status with a generic message.
// Unmapped errors never leak their text to the client.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	cause := unwrapKnown(err)
	statusCode, ok := errorStatusMap[cause]
	if !ok {
		statusCode = http.StatusInternalServerError
		cause = domain.ErrInternal
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, errorResponse{Error: cause.Error()})
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrBadRequest.Error()})
}

func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

// unwrapKnown walks the wrap chain for the first sentinel present in the
// status map.
func unwrapKnown(err error) error {
	for known := range errorStatusMap {
		if errors.Is(err, known) {
			return known
		}
	}
	return err
}

type paginationQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

func (q paginationQuery) normalized() port.Page {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	return port.Page{Page: page, Limit: limit}
}

type paginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newPagination(page port.Page, total int) paginationResponse {
	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}
	return paginationResponse{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
