package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bucket-manager/core/loader"
	"bucket-manager/core/logger"
	"bucket-manager/core/middleware/auth"
	"bucket-manager/core/middleware/rayid"
	"bucket-manager/feature/audit"
	"bucket-manager/feature/objects"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bucket-manager/docs/swagger"
)

// @title Bucket Manager API
// @version 1.0
// @description Upload, download, list and delete objects in a single S3 bucket.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bucket over HTTP",
	Long:  `Starts the HTTP API exposing the same upload, download, list and delete operations as the menu.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()
	logg := a.logger

	if !a.cfg.Server.IsSecured() {
		logg.Warn("SERVER_API_KEY is empty, the API is not protected")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             a.cfg.Server.BodyLimit(),
	})

	mgr := loader.NewManager()
	mgr.Register(objects.NewFeature(a.objects))
	mgr.Register(audit.NewFeature(a.audit))

	// RayID runs first so every log line below can carry it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		}
		if err != nil {
			l.Error("Request error", append(fields, zap.Error(err))...)
			return err
		}
		l.Info("Request completed", fields...)
		return nil
	})

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", healthHandler(a.objects))

	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Debug("Features loaded", zap.Strings("features", loaded))

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
		errCh <- app.Listen(":" + a.cfg.Server.Port)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	timeout := time.Duration(a.cfg.Server.ShutdownSeconds) * time.Second
	return app.ShutdownWithTimeout(timeout)
}

// healthHandler reports whether the configured bucket is reachable.
// It is registered ahead of the auth middleware.
func healthHandler(svc *objects.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		if err := svc.Check(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"bucket": svc.Bucket(),
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "bucket": svc.Bucket()})
	}
}
