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

	"github.com/mrlokans/novelzone/internal/config"
	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/integrity"
	http_controllers "github.com/mrlokans/novelzone/internal/http"
	"github.com/mrlokans/novelzone/internal/scheduler"
	"github.com/mrlokans/novelzone/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds every long-lived component of the server process.
type App struct {
	Config    *config.Config
	Database  *database.Database
	Manager   *database.Manager
	Monitor   *integrity.Monitor
	Tasks     *tasks.Client // nil when the task queue is disabled
	Scheduler *scheduler.IntegrityCheckScheduler
	Router    *gin.Engine

	cancel context.CancelFunc
}

// NewApp opens the catalog and wires the queue, scheduler and router.
// Nothing runs in the background until Start.
func NewApp(cfg *config.Config, version string) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	manager, err := database.NewManager(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Database: db,
		Manager:  manager,
		Monitor:  integrity.NewMonitor(),
	}

	if cfg.Tasks.Enabled {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.FromConfig(cfg.Tasks))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		taskClient.Register(tasks.NewVerifyIntegrityQueue(manager, app.Monitor))
		app.Tasks = taskClient
	}

	if cfg.Integrity.Enabled {
		app.Scheduler = scheduler.NewIntegrityCheckScheduler(cfg.Integrity.Schedule, app.dispatchIntegrityCheck)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:      db,
		Manager:       manager,
		Version:       version,
		ReaderID:      cfg.Reader.DefaultID,
		PopularLimit:  cfg.Home.PopularLimit,
		ContinueLimit: cfg.Home.ContinueLimit,
		Monitor:       app.Monitor,
	}
	if app.Tasks != nil {
		routerCfg.TaskQueue = app.Tasks
	}
	app.Router = http_controllers.NewRouter(routerCfg)

	return app, nil
}

// dispatchIntegrityCheck enqueues a check, or runs it inline without a queue.
func (a *App) dispatchIntegrityCheck(ctx context.Context) error {
	if a.Tasks != nil {
		_, err := a.Tasks.Enqueue(tasks.VerifyIntegrityTask{Trigger: "schedule"})
		return err
	}
	_, err := a.Monitor.Run(ctx, a.Manager, "schedule")
	return err
}

// Start launches the task workers and the integrity schedule.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	if a.Tasks != nil {
		go a.Tasks.Start(ctx)
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(ctx); err != nil {
			a.cancel()
			return err
		}
	}
	return nil
}

// Shutdown stops background work, waiting for running tasks until ctx expires.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
	}
	if a.cancel != nil {
		a.cancel()
	}
}

// Close releases the queue and catalog databases. Call after Shutdown.
func (a *App) Close() {
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.Database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT. SIGKILL can't be caught.
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
	log.Printf("Starting novelzone v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start background workers: %v", err)
	}

	Serve(app.Router, cfg, app.Shutdown)
}
