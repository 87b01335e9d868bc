// Package server initializes and runs the message relay server. It selects
// storage backends from configuration, starts the HTTP endpoint and the mDNS
// beacon, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/stgmsg/internal/discovery"
	"github.com/dmitrijs2005/stgmsg/internal/logging"
	"github.com/dmitrijs2005/stgmsg/internal/netx"
	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/config"
	"github.com/dmitrijs2005/stgmsg/internal/server/db"
	"github.com/dmitrijs2005/stgmsg/internal/server/httpapi"
	"github.com/dmitrijs2005/stgmsg/internal/server/images"
	"github.com/dmitrijs2005/stgmsg/internal/server/relay"
	"github.com/dmitrijs2005/stgmsg/internal/server/sessions"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
	beacon *discovery.Beacon
}

// NewApp wires the whole server from configuration. With an empty
// DatabaseDSN everything runs in process memory; with an empty RedisAddr the
// session table lives in memory as well.
func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var sessionRepo sessions.Repository
	if c.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		sessionRepo = sessions.NewRedisRepository(client)
	}

	var rm db.RepositoryManager
	if c.DatabaseDSN != "" {
		var err error
		rm, err = db.NewPostgresRepositoryManager(c.DatabaseDSN, c.InboxCapacity, sessionRepo)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	} else {
		rm = db.NewInMemoryRepositoryManager(c.InboxCapacity)
	}
	if sessionRepo == nil {
		sessionRepo = rm.Sessions()
	}

	accountService := accounts.NewService(rm.Accounts())
	sessionService := sessions.NewService(accountService, sessionRepo, c.SecretKey, c.SessionValidityDuration)
	relayService := relay.NewService(sessionService, accountService, rm.Inboxes(), c.MaxBodyBytes, logger)
	imageService := images.NewService(images.Settings{
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})

	app := &App{
		config: c,
		logger: logger,
		server: httpapi.NewServer(c.EndpointAddr, accountService, sessionService, relayService, imageService, logger),
		beacon: discovery.NewBeacon(c.ServerName, c.AdvertisePort, logger),
	}

	if c.DatabaseDSN != "" {
		if err := rm.RunMigrations(context.Background()); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBeacon(ctx context.Context, cancelFunc context.CancelFunc) {
	if ip, err := netx.LocalIP(); err == nil {
		app.logger.Info(ctx, "Advertising on LAN", "name", app.config.ServerName, "addr", fmt.Sprintf("%s:%d", ip, app.config.AdvertisePort))
	}
	if err := app.beacon.Advertise(ctx); err != nil {
		// A relay without discovery is still reachable by address, so this
		// only logs.
		app.logger.Error(ctx, "mDNS advertisement failed", "error", err)
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	app.startBeacon(ctx, cancelFunc)

	<-ctx.Done()

	app.beacon.Stop()
	if err := app.server.Shutdown(context.Background()); err != nil {
		app.logger.Error(ctx, "HTTP shutdown failed", "error", err)
	}

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
