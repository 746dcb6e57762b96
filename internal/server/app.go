// Package server wires configuration, storage, services and transports into
// a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/dealdocs/internal/logging"
	"github.com/dmitrijs2005/dealdocs/internal/server/config"
	"github.com/dmitrijs2005/dealdocs/internal/server/httpapi"
	"github.com/dmitrijs2005/dealdocs/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dealdocs/internal/server/services"
	"github.com/dmitrijs2005/dealdocs/internal/server/storage"

	gs "github.com/dmitrijs2005/dealdocs/internal/server/grpc"
)

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config          *config.Config
	logger          logging.Logger
	documentsDB     *sql.DB
	catalogDB       *sql.DB
	documentService *services.DocumentService
	catalogService  *services.CatalogService
}

// NewApp opens both stores, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.Environment)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	documentsDB, err := openDB(c.DocumentsDSN)
	if err != nil {
		return nil, fmt.Errorf("documents db init error: %w", err)
	}

	catalogDB, err := openDB(c.CatalogDSN)
	if err != nil {
		_ = documentsDB.Close()
		return nil, fmt.Errorf("catalog db init error: %w", err)
	}

	app := &App{config: c, logger: logger, documentsDB: documentsDB, catalogDB: catalogDB}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, documentsDB, catalogDB); err != nil {
		app.closeDBs()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	presigner, err := storage.NewS3Presigner(ctx, storage.S3Config{
		User:     c.S3RootUser,
		Password: c.S3RootPassword,
		Bucket:   c.S3Bucket,
		Region:   c.S3Region,
		Endpoint: c.S3BaseEndpoint,
		Expiry:   c.PresignExpiry,
	})
	if err != nil {
		app.closeDBs()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	app.documentService = services.NewDocumentService(documentsDB, catalogDB, rm, presigner)
	app.catalogService = services.NewCatalogService(documentsDB, catalogDB, rm, c.CompletenessConcurrency)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.documentService, app.catalogService,
		app.config.SecretKey, app.config.StoreTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	r := httpapi.NewRouter(app.config.EndpointAddrHTTP, app.logger, app.documentService, app.catalogService,
		app.config.SecretKey, app.config.StoreTimeout)

	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) closeDBs() {
	for _, db := range []*sql.DB{app.documentsDB, app.catalogDB} {
		if db != nil {
			_ = db.Close()
		}
	}
}

// Run serves both transports until a signal arrives or one of them fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.closeDBs()
	app.logger.Info(context.Background(), "App stopped")

	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
