package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/app/config"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/infrastructure/amqp"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/infrastructure/auth"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/infrastructure/mysql"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/infrastructure/razorpay"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/infrastructure/transport"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "storefront",
		Usage: "NJ Digital Boutique storefront backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: runMigrations,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("storefront failed")
	}
}

func runMigrations(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := mysql.NewConnection(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func serve(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := mysql.NewConnection(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}

	dispatcher := service.EventDispatcher(amqp.NewLogDispatcher())
	if cfg.AMQPURL != "" {
		conn, ch, err := amqp.Setup(cfg.AMQPURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		dispatcher = amqp.NewDispatcher(ch)
	}

	// A missing provider is a supported state: payment routes answer 503
	// and the demo flow stays available.
	var provider service.PaymentProvider
	if cfg.PaymentsEnabled() {
		provider = razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		log.Info("payment provider configured")
	} else {
		log.Info("payment provider keys not provided, card payments disabled")
	}

	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	userRepo := mysql.NewUserRepository(db)
	newsletterRepo := mysql.NewNewsletterRepository(db)

	pricing := service.NewPricingService(productRepo, cfg.ShippingFeeCents)
	orders := service.NewOrderService(orderRepo, pricing, dispatcher)
	payments := service.NewPaymentService(provider, cfg.RazorpayKeySecret, orders)
	catalog := service.NewCatalogService(productRepo)
	newsletter := service.NewNewsletterService(newsletterRepo, dispatcher)
	users := service.NewUserService(userRepo, auth.NewPasswordManager(), dispatcher)
	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)

	handler := transport.NewHandler(catalog, orders, payments, newsletter, users, tokens)

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("starting server")

	srv := &http.Server{Addr: addr, Handler: handler.Router()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	waitForKillSignal(getKillSignalChan())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignal(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("got SIGINT...")
	case syscall.SIGTERM:
		log.Info("got SIGTERM...")
	}
}
