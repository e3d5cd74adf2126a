package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/bancassurance-api/docs"
	"github.com/jhoicas/bancassurance-api/internal/application/auth"
	"github.com/jhoicas/bancassurance-api/internal/application/enrollment"
	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
	"github.com/jhoicas/bancassurance-api/internal/application/wallet"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/memory"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/bancassurance-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/seed"
	infrawallet "github.com/jhoicas/bancassurance-api/internal/infrastructure/wallet"
	httpRouter "github.com/jhoicas/bancassurance-api/internal/interfaces/http"
	"github.com/jhoicas/bancassurance-api/pkg/config"
	"github.com/jhoicas/bancassurance-api/pkg/logger"
	"github.com/jhoicas/bancassurance-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	data, err := loadSeed(cfg.Storage.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar semilla")
	}

	// Empleados, catálogo, sesiones y solicitudes viven siempre en memoria.
	employeeRepo := memory.NewEmployeeRepository(data.Employees)
	sessionRepo := memory.NewSessionRepository()
	catalogRepo := memory.NewCatalogRepository(data.Catalog)
	applicationRepo := memory.NewApplicationRepository()
	paymentRepo := memory.NewPaymentRepository()

	var (
		adminPolicyRepo    repository.AdminPolicyRepository
		customerPolicyRepo repository.CustomerPolicyRepository
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		adminPolicyRepo = postgres.NewAdminPolicyRepository(pool)
		customerPolicyRepo = postgres.NewCustomerPolicyRepository(pool)
	default:
		adminPolicyRepo = memory.NewAdminPolicyRepository(data.AdminPolicies)
		customerPolicyRepo = memory.NewCustomerPolicyRepository(data.CustomerPolicies)
	}

	// Sin WALLET_RPC_URL no hay billetera instalada: el gateway responde ErrWalletUnavailable.
	var provider ports.WalletProvider
	if cfg.Wallet.RPCURL != "" {
		provider = infrawallet.NewJSONRPCProvider(cfg.Wallet.RPCURL, cfg.Wallet.Timeout)
	} else {
		log.Warn().Msg("WALLET_RPC_URL vacío: las operaciones con billetera no estarán disponibles")
	}
	gateway := wallet.NewGateway(provider, wallet.Config{
		Destination: cfg.Wallet.Destination,
		USDPerETH:   cfg.Wallet.ETHUSDRate,
		Timeout:     cfg.Wallet.Timeout,
	}, log)

	authUC := auth.NewAuthUseCase(employeeRepo, sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)
	adminPolicyUC := usecase.NewAdminPolicyUseCase(adminPolicyRepo, gateway, log)
	customerPolicyUC := usecase.NewCustomerPolicyUseCase(customerPolicyRepo, gateway, log)

	// PDF: recibo de pago de la prima
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, receiptGenerator, cfg.Wallet.ExplorerTxURL)

	enrollmentUC := enrollment.New(
		catalogRepo, applicationRepo, paymentRepo,
		gateway, notify.NewLogNotifier(log),
		enrollment.Config{
			OTPBypass:     cfg.OTP.Bypass,
			OTPTTL:        cfg.OTP.TTL,
			ExplorerTxURL: cfg.Wallet.ExplorerTxURL,
		},
		log,
	)
	if cfg.OTP.Bypass {
		log.Warn().Msg("OTP_BYPASS activo: se acepta cualquier código de 6 caracteres")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Wallet.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if specFile, err := swaggerFile(cfg.Docs.SwaggerFile); err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	} else {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: specFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "wallet": gateway.Connected()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CatalogUC:        catalogUC,
		AdminPolicyUC:    adminPolicyUC,
		CustomerPolicyUC: customerPolicyUC,
		PaymentUC:        paymentUC,
		Enrollment:       enrollmentUC,
		Wallet:           gateway,
		LoginLimiter:     httpRouter.NewIPRateLimiter(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst),
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func loadSeed(path string) (*seed.Data, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.Load(path)
}

// swaggerFile devuelve el archivo de la especificación a servir. Si no existe en path,
// vuelca la especificación registrada por el paquete docs en un archivo temporal.
func swaggerFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return "", fmt.Errorf("leer especificación registrada: %w", err)
	}
	f, err := os.CreateTemp("", "bancassurance-swagger-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(doc); err != nil {
		return "", err
	}
	return f.Name(), nil
}
