package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kevin07696/payment-simulator/internal/adapters/idm"
	"github.com/kevin07696/payment-simulator/internal/adapters/logging"
	"github.com/kevin07696/payment-simulator/internal/adapters/village"
	"github.com/kevin07696/payment-simulator/internal/config"
	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/frames"
	"github.com/kevin07696/payment-simulator/internal/services/orchestrator"
	"github.com/kevin07696/payment-simulator/pkg/observability"
	"github.com/kevin07696/payment-simulator/pkg/resilience"
)

// consoleDriver stands in for the embedded capture widget in the CLI demo:
// commands are logged instead of executed in a page
type consoleDriver struct {
	logger *zap.Logger
}

func (d *consoleDriver) Post(cmd *frames.Command) {
	d.logger.Debug("frames command issued", zap.String("command", cmd.Name))
}

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	zlog, err := initLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	logger := logging.NewZapLogger(zlog)

	zlog.Info("starting payment simulator",
		zap.String("customer_id", cfg.Platform.CustomerID),
		zap.String("wallet", cfg.Platform.Wallet))

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = observability.StartMetricsServer(cfg.Metrics.Port)
		zlog.Info("metrics server started", zap.String("port", cfg.Metrics.Port))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeouts := resilience.DefaultTimeoutConfig()
	runCtx, cancel := context.WithTimeout(ctx, timeouts.Run)
	defer cancel()

	httpClient := &http.Client{Timeout: time.Duration(cfg.Platform.TimeoutSeconds) * time.Second}
	authenticator := idm.NewAuthenticator(cfg.Platform.CustomerBase, cfg.Platform.APIKey, httpClient, logger)
	factory := village.NewFactory(httpClient, logger)
	driver := &consoleDriver{logger: zlog}

	orch := orchestrator.New(runCtx, authenticator, factory, driver, logger, timeouts)

	outcomes, cancelOutcomes := orch.Outcome.Subscribe()
	defer cancelOutcomes()
	errs, cancelErrs := orch.Errors.Subscribe()
	defer cancelErrs()

	go func() {
		for {
			select {
			case err := <-errs:
				if err != nil {
					zlog.Warn("orchestration error reported", zap.Error(err))
				}
			case <-runCtx.Done():
				return
			}
		}
	}()

	customer := models.CustomerOptions{
		APIKey:     cfg.Platform.APIKey,
		BaseURL:    cfg.Platform.CustomerBase,
		Wallet:     models.Wallet(cfg.Platform.Wallet),
		WalletID:   cfg.Platform.WalletID,
		CustomerID: cfg.Platform.CustomerID,
	}
	merchant := models.MerchantOptions{
		APIKey:     cfg.Platform.APIKey,
		BaseURL:    cfg.Platform.MerchantBase,
		Wallet:     models.Wallet(cfg.Platform.Wallet),
		MerchantID: cfg.Platform.MerchantID,
		WindowSize: models.AcsWindowSize(cfg.Platform.AcsWindowSize),
		Require3DS: cfg.Platform.Require3DS,
	}
	request := models.NewPaymentRequestSpec(cfg.Payment.GrossAmount, cfg.Payment.MaxUses, cfg.Platform.Require3DS)

	orch.CreatePaymentRequest(runCtx, merchant, customer, request, nil)

	if !orch.ClientsBound() {
		zlog.Error("provisioning failed, aborting run")
		shutdown(metricsServer, zlog)
		os.Exit(1)
	}

	cards := orch.Instruments.Get()
	if len(cards) == 0 {
		zlog.Info("no stored instruments; a real run would capture a new card through the widget")
		shutdown(metricsServer, zlog)
		return
	}

	card := cards[0]
	zlog.Info("paying with stored instrument",
		zap.String("instrument_id", card.PaymentInstrumentID),
		zap.String("scheme", card.Scheme),
		zap.String("suffix", card.CardSuffix))

	orch.SelectExistingCardPaymentOption(card)
	if err := orch.MakePayment(runCtx, orch.Option.Get()); err != nil {
		zlog.Error("payment submission failed", zap.Error(err))
	}

	// The subscription delivers the current value first, so skip past
	// NoOutcome until a terminal outcome arrives or the run times out.
	for {
		select {
		case outcome := <-outcomes:
			if !models.IsTerminal(outcome) {
				continue
			}
			switch result := outcome.(type) {
			case models.Success:
				zlog.Info("payment approved")
			case models.Failure:
				zlog.Error("payment failed", zap.String("reason", result.Reason))
			}
			shutdown(metricsServer, zlog)
			return
		case <-runCtx.Done():
			zlog.Error("run timed out before an outcome was resolved")
			shutdown(metricsServer, zlog)
			return
		}
	}
}

func initLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		var lvl zap.AtomicLevel
		if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
		zcfg.Level = lvl
	}
	return zcfg.Build()
}

func shutdown(metricsServer *http.Server, zlog *zap.Logger) {
	if metricsServer == nil {
		return
	}
	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		zlog.Warn("metrics server shutdown", zap.Error(err))
	}
}
