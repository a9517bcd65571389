package port

import "context"

// InitializePayment is the request to open a gateway checkout. AmountMinor is
// in the smallest currency unit.
type InitializePayment struct {
	Email       string
	AmountMinor int64
	Reference   string
	CallbackURL string
	OrderID     uint64
}

type CheckoutSession struct {
	CheckoutURL string
	Reference   string
}

// VerifiedPayment is the gateway's answer for a reference. OrderID is zero
// when the gateway metadata carried none. Raw keeps the unparsed response
// body for audit storage.
type VerifiedPayment struct {
	Status      string
	AmountMinor int64
	PaidAt      string
	OrderID     uint64
	Raw         []byte
}

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type PaymentGateway interface {
	Initialize(ctx context.Context, req InitializePayment) (*CheckoutSession, error)
	Verify(ctx context.Context, reference string) (*VerifiedPayment, error)
}
