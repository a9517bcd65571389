package service

import (
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

type Service struct {
	repo    port.Repository
	gateway port.PaymentGateway
	cipher  port.CredentialCipher
	audit   port.AuditLog
	logger  *zap.Logger
}

func NewService(repo port.Repository, gateway port.PaymentGateway,
	cipher port.CredentialCipher, audit port.AuditLog, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:    repo,
		gateway: gateway,
		cipher:  cipher,
		audit:   audit,
		logger:  logger,
	}, nil
}
