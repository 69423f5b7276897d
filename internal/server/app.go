// Package server wires configuration, storage backends and services into the
// CMS HTTP server and runs it until an OS signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/config"
	"github.com/ikhlashousing/propertycms/internal/server/httpapi"
	"github.com/ikhlashousing/propertycms/internal/server/mailer"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/repomanager"
	"github.com/ikhlashousing/propertycms/internal/server/services"
	"github.com/ikhlashousing/propertycms/internal/server/storage"
)

const startupTimeout = 30 * time.Second

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

func newLogger(c *config.Config) (logging.Logger, error) {
	switch c.LogBackend {
	case config.LogBackendSlog, "":
		return logging.NewJSONSlogLogger(os.Stdout, slog.LevelInfo), nil
	case config.LogBackendZerolog:
		return logging.NewConsoleZerologLogger(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
}

// newStorage returns the upload store and, for the local backend, the
// directory to serve under /uploads/.
func newStorage(ctx context.Context, c *config.Config) (storage.Storage, string, error) {
	switch c.UploadBackend {
	case config.UploadBackendLocal:
		st, err := storage.NewLocalStorage(c.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return st, st.Root(), nil
	case config.UploadBackendS3:
		st, err := storage.NewS3Storage(ctx, storage.S3Config{
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			Bucket:        c.S3Bucket,
			Region:        c.S3Region,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicBaseURL: c.S3PublicBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return st, "", nil
	default:
		return nil, "", fmt.Errorf("unknown upload backend %q", c.UploadBackend)
	}
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	st, uploadDir, err := newStorage(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	sender := mailer.New(mailer.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}, logger)

	handler := httpapi.NewHandler(httpapi.Services{
		Auth:         services.NewAuthService(db, rm, sender, logger, c),
		Projects:     services.NewProjectService(db, rm, st, logger),
		Insights:     services.NewInsightService(db, rm, st, logger),
		Achievements: services.NewAchievementService(db, rm),
		Testimonials: services.NewTestimonialService(db, rm),
		Offerings:    services.NewOfferingService(db, rm),
		Carousel:     services.NewCarouselService(db, rm, st, logger),
		Gallery:      services.NewGalleryService(db, rm, st, logger),
		Contact:      services.NewContactService(sender, c.ContactRecipient, logger),
	}, httpapi.Options{
		ExposeRecoveryCode: c.ExposeRecoveryCode,
		AuthRateLimit:      c.AuthRateLimit,
		MaxUploadBytes:     c.MaxUploadBytes,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
		UploadDir:          uploadDir,
		TrustProxy:         c.TrustProxy,
	}, logger)

	if c.ExposeRecoveryCode {
		logger.Warn(ctx, "recovery codes are echoed in /forget_password responses")
	}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, handler.Routes()),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
	return err
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// closes the database pool. It returns the error that stopped the HTTP
// server, if any.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "stopped")
	return runErr
}
