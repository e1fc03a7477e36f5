package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/identity"
	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/application/session"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Nomina-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Nomina-api/internal/interfaces/http"
	"github.com/jhoicas/Nomina-api/pkg/config"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	discountRepo := postgres.NewDiscountRepository(pool)
	advanceRepo := postgres.NewAdvanceRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sesiones: un Holder por usuario, alimentado por el repositorio y el feed de cambios.
	feed := identity.NewChangeFeed()
	registry := session.NewRegistry(
		func(userID string) session.Bridge {
			return identity.NewBridge(identity.NewRepositoryProvider(userID, userRepo, feed))
		},
		log.Component("session"),
		session.WithLastLoginTimeout(cfg.Session.LastLoginTimeout),
	)
	sessions := httpRouter.NewSessions(registry, cfg.Session.RefreshTimeout)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, identity.NewUserDirectory(userRepo, feed))
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	paymentUC := payroll.NewPaymentUseCase(txRunner, employeeRepo, paymentRepo)
	deductionUC := payroll.NewDeductionUseCase(employeeRepo, discountRepo, advanceRepo)
	receiptUC := payroll.NewReceiptUseCase(
		paymentRepo, employeeRepo, discountRepo, advanceRepo,
		infrapdf.NewReceiptGenerator(cfg.Report.CompanyName),
	)
	statisticsUC := appanalytics.NewStatisticsUseCase(statsRepo)

	// Sin WriteTimeout: /api/session/events mantiene la respuesta abierta.
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nómina API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": registry.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		EmployeeUC:   employeeUC,
		PaymentUC:    paymentUC,
		DeductionUC:  deductionUC,
		ReceiptUC:    receiptUC,
		StatisticsUC: statisticsUC,
		Sessions:     sessions,
		Session:      httpRouter.NewSessionHandler(sessions, registry.Context(), log.Component("sse")),
		Revocations:  auth.NewRevocations(),
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Int("sessions", registry.Len()).Msg("señal de apagado recibida, cerrando servidor...")

	// Primero las sesiones: cierra los flujos SSE para que el apagado HTTP no espere por ellos.
	registry.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
