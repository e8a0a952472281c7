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
	"github.com/swaggo/swag"

	"github.com/jhoicas/Pedidos-api/docs"
	"github.com/jhoicas/Pedidos-api/internal/application/analytics"
	"github.com/jhoicas/Pedidos-api/internal/application/ports"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/application/validation"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/migration"
	infrapdf "github.com/jhoicas/Pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/migrations"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	// Las ventanas del dashboard (inicio de mes, últimos 3/6 meses) se calculan en time.Local;
	// la sesión PostgreSQL usa la misma zona (DBConfig.TimeZone).
	loc, err := cfg.App.Location()
	if err != nil {
		panic("zona horaria: " + err.Error())
	}
	time.Local = loc

	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		if err := runMigrations(cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché del dashboard: Redis si está configurado; si no, sin caché.
	var dashboardCache ports.DashboardCache = cache.NoopCache{}
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, dashboard sin caché")
		} else {
			defer client.Close()
			dashboardCache = cache.NewRedisDashboardCache(client, cfg.Redis.TTL, log)
		}
	}

	imageStorage, err := storage.NewS3ImageStorage(ctx, cfg.Storage, cfg.Upload, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}
	if err := imageStorage.EnsureBucket(ctx); err != nil {
		// la subida de imágenes fallará con 502 hasta que el bucket exista; el resto funciona
		log.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("no se pudo verificar el bucket")
	}

	validator := validation.New()
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// PDF: comprobante del pedido para el cliente
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)

	orderUC := usecase.NewOrderUseCase(
		txRunner, orderRepo, customerRepo,
		imageStorage, receiptGenerator, dashboardCache,
		validator, usecase.ImageLimits{MaxBytes: cfg.Upload.MaxImageBytes},
		log.Named("orders"),
	)
	customerUC := usecase.NewCustomerUseCase(customerRepo, validator)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, orderRepo, customerRepo, dashboardCache, log.Named("dashboard"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// margen para las cabeceras multipart; el tamaño de la imagen se valida en el handler
		BodyLimit: int(cfg.Upload.MaxImageBytes) + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	docs.SwaggerInfo.Title = cfg.App.Name
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Pedidos API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:       orderUC,
		CustomerUC:    customerUC,
		DashboardUC:   dashboardUC,
		Log:           log.Named("http"),
		MaxImageBytes: cfg.Upload.MaxImageBytes,
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

func runMigrations(db config.DBConfig, log *logger.Logger) error {
	url, err := postgres.MigrationURL(db)
	if err != nil {
		return err
	}
	m, err := migration.New(migrations.FS, url, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()
	return m.Up()
}
