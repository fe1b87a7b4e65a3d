package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kosbot/kosbot-api/internal/api/handlers"
	"github.com/kosbot/kosbot-api/internal/api/router"
	"github.com/kosbot/kosbot-api/internal/config"
	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/integrations/mail"
	"github.com/kosbot/kosbot-api/internal/integrations/stripe"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
	"github.com/kosbot/kosbot-api/internal/repository/postgres"
	"github.com/kosbot/kosbot-api/internal/services"
	"github.com/kosbot/kosbot-api/internal/worker"
	"github.com/kosbot/kosbot-api/migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kosbot-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
		Service:    "kosbot-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	applied, err := postgres.RunMigrations(ctx, db, migrations.GetFS())
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if len(applied) > 0 {
		log.With("migrations", applied).Info("Database migrations applied")
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	propertyRepo := postgres.NewPropertyRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	tenantRepo := postgres.NewTenantRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	// Integrations
	stripeClient := stripe.NewClient(stripe.Config{
		SecretKey:     cfg.Billing.SecretKey,
		WebhookSecret: cfg.Billing.WebhookSecret,
	}, log)
	if cfg.Billing.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set; checkout and webhooks are disabled")
	}

	var notifier billing.Notifier = mail.NopNotifier{}
	if cfg.Mail.Enabled() {
		notifier = mail.NewSendGridNotifier(mail.Config{
			APIKey:      cfg.Mail.SendGridAPIKey,
			FromAddress: cfg.Mail.FromAddress,
			FromName:    cfg.Mail.FromName,
			BillingURL:  cfg.Billing.PortalReturnURL,
		}, log)
	}

	products, err := billing.NewProductCatalog(cfg.Billing.Products)
	if err != nil {
		return fmt.Errorf("billing products: %w", err)
	}

	// Services
	gate := services.NewEntitlementService(profileRepo, propertyRepo, roomRepo, log)
	profileService := services.NewProfileService(profileRepo, cfg.Billing.TrialDays, cfg.Auth.BCryptCost, log)
	billingService := services.NewBillingService(profileRepo, stripeClient, cfg.Billing.Prices, services.BillingURLs{
		Success:      cfg.Billing.SuccessURL,
		Cancel:       cfg.Billing.CancelURL,
		PortalReturn: cfg.Billing.PortalReturnURL,
	}, log)
	reconciler := services.NewSubscriptionReconciler(profileRepo, stripeClient, products, notifier, log)
	propertyService := services.NewPropertyService(propertyRepo, roomRepo, gate, log)
	roomService := services.NewRoomService(roomRepo, propertyRepo, tenantRepo, gate, log)
	tenantService := services.NewTenantService(tenantRepo, propertyRepo, roomRepo, log)
	invoiceService := services.NewInvoiceService(invoiceRepo, tenantRepo, log)
	paymentService := services.NewPaymentService(paymentRepo, invoiceRepo, log)
	ticketService := services.NewTicketService(ticketRepo, propertyRepo, roomRepo, log)
	dashboardService := services.NewDashboardService(services.DashboardRepos{
		Properties: propertyRepo,
		Rooms:      roomRepo,
		Tenants:    tenantRepo,
		Invoices:   invoiceRepo,
		Payments:   paymentRepo,
		Tickets:    ticketRepo,
	}, log)

	// Background jobs
	if cfg.Worker.OverdueSweepEnabled {
		sweeper := worker.NewOverdueSweeper(invoiceRepo, cfg.Worker.OverdueSweepSchedule, log)
		if err := sweeper.Start(ctx); err != nil {
			return fmt.Errorf("start overdue sweeper: %w", err)
		}
		defer sweeper.Stop()
	}

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(db, log),
		Auth:      handlers.NewAuthHandler(profileService, gate, cfg, log, val),
		Billing:   handlers.NewBillingHandler(billingService, gate, log, val),
		Webhook:   handlers.NewWebhookHandler(reconciler, log),
		Property:  handlers.NewPropertyHandler(propertyService, log, val),
		Room:      handlers.NewRoomHandler(roomService, log, val),
		Tenant:    handlers.NewTenantHandler(tenantService, log, val),
		Invoice:   handlers.NewInvoiceHandler(invoiceService, log, val),
		Payment:   handlers.NewPaymentHandler(paymentService, log, val),
		Ticket:    handlers.NewTicketHandler(ticketService, log, val),
		Dashboard: handlers.NewDashboardHandler(dashboardService, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
			"db_driver":   cfg.Database.Driver,
			"mail":        cfg.Mail.Enabled(),
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Server shutdown error")
		return err
	}

	log.Info("Server stopped")
	return nil
}
