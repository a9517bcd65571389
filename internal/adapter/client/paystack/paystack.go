package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jsocialogs/socialshop/internal/adapter/config"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

// Client talks to the Paystack transaction API. Amounts cross the wire in
// the smallest currency unit.
type Client struct {
	apiURL    string
	secretKey string
	http      *http.Client
	logger    *zap.Logger
}

func NewClient(cfg *config.Paystack, log *zap.Logger) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("paystack secret key is not configured")
	}
	return &Client{
		apiURL:    cfg.APIURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: requestTimeout},
		logger:    log,
	}, nil
}

type initializeRequest struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		PaidAt   string `json:"paid_at"`
		Metadata struct {
			OrderID uint64 `json:"order_id,string"`
		} `json:"metadata"`
	} `json:"data"`
}

func (c *Client) Initialize(ctx context.Context,
	req port.InitializePayment) (*port.CheckoutSession, error) {
	body, err := json.Marshal(initializeRequest{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    map[string]any{"order_id": fmt.Sprint(req.OrderID)},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status from paystack initialize",
			zap.String("reference", req.Reference), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("paystack initialize: bad response %v", resp.StatusCode)
	}

	var result initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("paystack initialize decode: %w", err)
	}
	if !result.Status {
		return nil, fmt.Errorf("paystack initialize rejected: %s", result.Message)
	}

	return &port.CheckoutSession{
		CheckoutURL: result.Data.AuthorizationURL,
		Reference:   result.Data.Reference,
	}, nil
}

func (c *Client) Verify(ctx context.Context, reference string) (*port.VerifiedPayment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+"/transaction/verify/"+reference, http.NoBody)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	c.logger.Debug("Fire payment verification request", zap.String("reference", reference))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status from paystack verify",
			zap.String("reference", reference), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("paystack verify: bad response %v", resp.StatusCode)
	}

	var buf bytes.Buffer
	var result verifyResponse
	if err := json.NewDecoder(io.TeeReader(resp.Body, &buf)).Decode(&result); err != nil {
		return nil, fmt.Errorf("paystack verify decode: %w", err)
	}
	if !result.Status {
		return nil, fmt.Errorf("paystack verify rejected: %s", result.Message)
	}

	return &port.VerifiedPayment{
		Status:      result.Data.Status,
		AmountMinor: result.Data.Amount,
		PaidAt:      result.Data.PaidAt,
		OrderID:     result.Data.Metadata.OrderID,
		Raw:         buf.Bytes(),
	}, nil
}
