package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "iescms_backend/internals/databases"
	"iescms_backend/internals/features/attendance/events/scheduler"
	helper "iescms_backend/internals/helpers"
	"iescms_backend/internals/middlewares"
	routes "iescms_backend/internals/route"
)

type ServeOptions struct {
	*RootOptions
	AutoMigrate bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (and the auto-materializer when AUTO_MATERIALIZE_CRON is set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.AutoMigrate, "migrate", false, "run migrations before serving")
	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, log := opts.Cfg, opts.Log

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ErrorHandler:            helper.FromFiberError,
	})
	middlewares.SetupMiddlewares(app, cfg, log)
	app.Use(etag.New())

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.DB, log)
	if err != nil {
		return err
	}
	database.TunePool(db, log)
	database.WarmUpQueries(db, log)
	if opts.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	notifier := openNotifier(ctx, opts.RootOptions)
	svc := routes.NewServices(db, cfg, log, notifier)
	routes.SetupRoutes(app, db, svc, cfg, log)

	// ⏱ scheduler setelah DB siap
	var stopCron func()
	if cfg.AutoMaterializeCron != "" {
		c, err := scheduler.Start(cfg.AutoMaterializeCron, &scheduler.AutoMaterializer{
			Schedules: svc.ScheduleRepo,
			Events:    svc.Events,
			Log:       log.Named("auto-materialize"),
		})
		if err != nil {
			return err
		}
		stopCron = func() { <-c.Stop().Done() }
	}

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Info("✅ Listening", zap.String("port", cfg.Port))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(sctx)
	if stopCron != nil {
		stopCron()
	}
	_ = notifier.Close()
	database.Close(db)
	return nil
}
