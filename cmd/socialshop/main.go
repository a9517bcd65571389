package main

import (
	"context"
	"fmt"

	"github.com/jsocialogs/socialshop/internal/adapter/auditlog"
	"github.com/jsocialogs/socialshop/internal/adapter/cipher"
	"github.com/jsocialogs/socialshop/internal/adapter/client/paystack"
	"github.com/jsocialogs/socialshop/internal/adapter/config"
	"github.com/jsocialogs/socialshop/internal/adapter/handler/http"
	"github.com/jsocialogs/socialshop/internal/adapter/logger"
	"github.com/jsocialogs/socialshop/internal/adapter/storage"
	"github.com/jsocialogs/socialshop/internal/adapter/storage/repository"
	"github.com/jsocialogs/socialshop/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}

	credCipher, err := cipher.New(conf.Cipher)
	if err != nil {
		log.Error("credential cipher creating error", zap.Error(err))
		return
	}

	gateway, err := paystack.NewClient(conf.Paystack, log.Named("Paystack"))
	if err != nil {
		log.Error("paystack client creating error", zap.Error(err))
		return
	}

	audit, err := auditlog.New(db, log.Named("Audit"))
	if err != nil {
		log.Error("audit log creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, gateway, credCipher, audit, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	productHandler, err := http.NewProductHandler(svc, log.Named("Product handler"))
	if err != nil {
		log.Error("product handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	walletHandler, err := http.NewWalletHandler(svc, log.Named("Wallet handler"))
	if err != nil {
		log.Error("wallet handler creating error", zap.Error(err))
		return
	}

	customerHandler, err := http.NewCustomerHandler(svc, log.Named("Customer handler"))
	if err != nil {
		log.Error("customer handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, productHandler, orderHandler, paymentHandler, walletHandler, customerHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
