package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfsync/internal/audit"
	"github.com/mrlokans/shelfsync/internal/config"
	"github.com/mrlokans/shelfsync/internal/database"
	auditrepo "github.com/mrlokans/shelfsync/internal/database/audit"
	"github.com/mrlokans/shelfsync/internal/database/links"
	"github.com/mrlokans/shelfsync/internal/demo"
	http_controllers "github.com/mrlokans/shelfsync/internal/http"
	"github.com/mrlokans/shelfsync/internal/scheduler"
	"github.com/mrlokans/shelfsync/internal/security"
	"github.com/mrlokans/shelfsync/internal/services"
	"github.com/mrlokans/shelfsync/internal/sessions"
	"github.com/mrlokans/shelfsync/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then give in-flight requests the
	// configured timeout to finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting ShelfSync v%s", version)

	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		demoMiddleware = demo.NewMiddleware(true)
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	linksRepo := links.NewRepository(db.DB)

	uow := database.NewUnitOfWork(db.DB)
	bookService := services.NewBookService(uow, auditService)
	authorService := services.NewAuthorService(uow, auditService)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewSweepLinksQueue(linksRepo, auditService),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic maintenance goes through the queue when it is running so
	// retries and retention apply; otherwise the jobs run inline.
	maintenance := scheduler.NewMaintenanceScheduler(cfg.Maintenance, maintenanceJobs(taskClient, linksRepo, auditService, cfg.Audit.RetentionDays))
	maintenanceCtx, maintenanceCancel := context.WithCancel(context.Background())
	defer maintenanceCancel()
	if err := maintenance.Start(maintenanceCtx); err != nil {
		log.Printf("WARNING: Maintenance scheduler not started: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := sessions.NewSessionManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret, generated, err := security.CSRFSecret(cfg.Session.CSRFSecret)
	if err != nil {
		log.Fatalf("Failed to prepare CSRF secret: %v", err)
	}
	if generated {
		log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
	}

	routerCfg := http_controllers.RouterConfig{
		Books:              bookService,
		Authors:            authorService,
		Health:             db,
		Audit:              auditService,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		SessionManager:     sessionManager,
		CSRFSecret:         csrfSecret,
		SecureCookies:      cfg.Session.SecureCookies,
		DemoMiddleware:     demoMiddleware,
		TemplatesPath:      cfg.UI.TemplatesPath,
		StaticPath:         cfg.UI.StaticPath,
		Version:            version,
	}
	if taskClient != nil {
		routerCfg.Tasks = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		maintenance.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// maintenanceJobs builds the scheduled work. With a task client the jobs
// only enqueue; without one they sweep and prune directly.
func maintenanceJobs(client *tasks.Client, sweeper tasks.LinkSweeper, auditService *audit.Service, retentionDays int) scheduler.Jobs {
	if client != nil {
		return scheduler.Jobs{
			SweepLinks: func() error {
				_, err := client.EnqueueLinkSweep()
				return err
			},
			PruneAudit: func() error {
				_, err := client.EnqueueAuditCleanup(retentionDays)
				return err
			},
		}
	}

	return scheduler.Jobs{
		SweepLinks: func() error {
			_, err := tasks.RunLinkSweep(sweeper, auditService)
			return err
		},
		PruneAudit: func() error {
			_, err := tasks.RunAuditCleanup(auditService, retentionDays)
			return err
		},
	}
}
