package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/auth"
	"github.com/jhoicas/bancassurance-api/internal/application/enrollment"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
	"github.com/jhoicas/bancassurance-api/internal/application/wallet"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CatalogUC        *usecase.CatalogUseCase
	AdminPolicyUC    *usecase.AdminPolicyUseCase
	CustomerPolicyUC *usecase.CustomerPolicyUseCase
	PaymentUC        *usecase.PaymentUseCase
	Enrollment       *enrollment.UseCase
	Wallet           *wallet.Gateway
	LoginLimiter     *IPRateLimiter
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	loginLimit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.LoginLimiter != nil {
		loginLimit = deps.LoginLimiter.Middleware()
	}
	authGroup.Post("/insurance/login", loginLimit, authHandler.LoginInsurance)
	authGroup.Post("/bank/login", loginLimit, authHandler.LoginBank)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Catálogo (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/policies", catalogHandler.List)
	api.Get("/policies/:id", catalogHandler.GetByID)

	// Solicitudes (público)
	apps := api.Group("/applications")
	appHandler := NewApplicationHandler(deps.Enrollment)
	apps.Post("/", appHandler.Start)
	apps.Get("/:id", appHandler.Get)
	apps.Post("/:id/form/open", appHandler.OpenForm)
	apps.Post("/:id/form", appHandler.SubmitForm)
	apps.Post("/:id/otp", appHandler.VerifyOTP)
	apps.Post("/:id/cancel", appHandler.Cancel)
	apps.Post("/:id/pay", appHandler.Pay)

	// Pagos (público)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	api.Get("/payments/:id", paymentHandler.Get)
	api.Get("/payments/:id/receipt", paymentHandler.Receipt)

	// Billetera
	walletHandler := NewWalletHandler(deps.Wallet)
	api.Get("/wallet", walletHandler.Status)
	api.Post("/wallet/connect", walletHandler.Connect)

	// Panel de la aseguradora (rol insurance)
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleInsurance))
	adminHandler := NewAdminPolicyHandler(deps.AdminPolicyUC)
	admin.Get("/policies", adminHandler.List)
	admin.Post("/policies", adminHandler.Create)
	admin.Get("/policies/:id", adminHandler.GetByID)
	admin.Put("/policies/:id", adminHandler.Update)
	admin.Delete("/policies/:id", adminHandler.Delete)

	// Panel del banco (rol bank)
	bank := api.Group("/bank", requireAuth, RequireRole(entity.RoleBank))
	customerHandler := NewCustomerPolicyHandler(deps.CustomerPolicyUC)
	bank.Get("/customer-policies", customerHandler.List)
	bank.Post("/customer-policies/:id/claims", customerHandler.FileClaim)
}
