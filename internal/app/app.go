package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bnrfx/internal/adapters/cache"
	"bnrfx/internal/adapters/filecache"
	"bnrfx/internal/adapters/httpclient"
	"bnrfx/internal/api"
	"bnrfx/internal/config"
	httpserver "bnrfx/internal/platform/http"
	"bnrfx/internal/rate"
	"bnrfx/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

const defaultFeedTimeout = 10 * time.Second

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	SetupLogging(appCfg.Logging.Level)
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateService, closeService, err := NewRateService(appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to build rate service")
		return err
	}
	defer closeService()

	scheduler := rate.NewScheduler(rateService, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	rateHandler := handler.NewRateHandler(rate.NewValidator(), rateService)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// SetupLogging points logrus at stdout with the configured level, info if unparsable.
func SetupLogging(level string) {
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

// NewRateService builds the acquisition policy over the BNR feed and the file
// cache. The returned func releases the in-memory cache.
func NewRateService(appCfg *config.AppConfig) (*rate.Service, func(), error) {
	feedTimeout := time.Duration(appCfg.Feed.TimeoutSeconds) * time.Second
	if feedTimeout <= 0 {
		feedTimeout = defaultFeedTimeout
	}
	feed := httpclient.NewBNRFeedClient(&http.Client{Timeout: feedTimeout}, appCfg.Feed.URL)

	memo, err := cache.NewMemoStore(
		filecache.NewSnapshotStore(appCfg.Cache.Path),
		appCfg.Cache.Path,
		appCfg.Cache.MemoMaxItems,
	)
	if err != nil {
		return nil, nil, err
	}

	svc := rate.NewService(feed, memo, rate.Config{
		FreshFor: time.Duration(appCfg.Cache.FreshForHours) * time.Hour,
	})
	return svc, memo.Close, nil
}
