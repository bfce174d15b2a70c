package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"patron-import/core/config"
	"patron-import/core/identity"
	"patron-import/core/logger"
	"patron-import/feature/importer"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd runs the importer as an HTTP service.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the importer as an HTTP service",
	Long: `Starts an HTTP server exposing POST /patron-import. Each request carries
a JSON array of patron records and is processed as one complete import run;
the response is the run summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer func() {
			_ = logg.Sync()
		}()
		zap.ReplaceGlobals(logg)

		// 3. Initialize identity client and importer
		client, err := identity.NewClient(cfg.Service)
		if err != nil {
			logg.Fatal("Failed to create identity client", zap.Error(err))
		}
		svc := importer.NewService(client, logg, cfg.Import)

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// RayID middleware: tag each request so its import logs correlate.
		app.Use(func(c *fiber.Ctx) error {
			rid := c.Get("X-Request-Id")
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Locals("ray_id", rid)
			c.Set("X-Request-Id", rid)
			return c.Next()
		})

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		handler := importer.NewHandler(svc)
		handler.RegisterRoutes(app)

		// 5. Graceful shutdown on SIGINT/SIGTERM
		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			logg.Info("Shutting down")
			_ = app.Shutdown()
		}()

		logg.Info("Import service listening",
			zap.String("port", cfg.Server.Port),
			zap.String("tenant", cfg.Service.Tenant),
		)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logg.Fatal("Server stopped", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
