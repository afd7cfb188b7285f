// @title           BSGoods Inventory API
// @version         1.0
// @description     Gestión de productos del inventario: tabla con filtros, orden y paginación sobre un backend simulado.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	_ "github.com/jhoicas/bsgoods-inventory/docs"
	"github.com/jhoicas/bsgoods-inventory/internal/application/auth"
	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
	"github.com/jhoicas/bsgoods-inventory/internal/application/notify"
	"github.com/jhoicas/bsgoods-inventory/internal/application/session"
	"github.com/jhoicas/bsgoods-inventory/internal/application/store"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/idgen"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/mock"
	infranotify "github.com/jhoicas/bsgoods-inventory/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/bsgoods-inventory/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/bsgoods-inventory/internal/interfaces/http"
	"github.com/jhoicas/bsgoods-inventory/pkg/config"
	"github.com/jhoicas/bsgoods-inventory/pkg/logger"
)

func main() {
	// .env opcional: sus valores pasan al entorno antes de leer la configuración
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando aplicación")

	source, err := mock.NewProductSource(cfg.Store.FetchLatency)
	if err != nil {
		log.Fatal().Err(err).Msg("seed de productos")
	}

	iconRegistry := icons.Default()
	validator := validation.New(iconRegistry)

	userRepo, err := memory.NewDemoUserRepository(cfg.Auth.DemoUserID, cfg.Auth.DemoEmail, cfg.Auth.DemoPassword, cfg.Auth.DemoName)
	if err != nil {
		log.Fatal().Err(err).Msg("usuario de demostración")
	}
	authUC := auth.NewAuthUseCase(userRepo, validator, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	notifyLog := infranotify.NewLogNotifier(log)
	sessions := session.NewRegistry(session.Deps{
		Source:    source,
		Validator: validator,
		IDs:       idgen.UUIDGenerator{},
		Icons:     iconRegistry,
		NewFeed: func() notify.Feed {
			return infranotify.NewFeed(cfg.Notify.FeedSize)
		},
		NewNotifier: func(feed notify.Feed) notify.Notifier {
			return infranotify.Multi{feed, notifyLog}
		},
	}, session.Config{
		Latency: store.Latency{
			Add:    cfg.Store.AddLatency,
			Update: cfg.Store.UpdateLatency,
			Delete: cfg.Store.DeleteLatency,
		},
		DefaultPageSize: cfg.Table.DefaultPageSize,
	}, log)

	// PDF: exportación de la tabla filtrada
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BSGoods Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": sessions.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Sessions:  sessions,
		Reports:   pdfGenerator,
		Icons:     iconRegistry,
		Validator: validator,
		JWTSecret: cfg.JWT.Secret,
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
	sessions.CloseAll()

	log.Info().Msg("aplicación detenida")
}
