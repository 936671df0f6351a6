package main

import (
	"bnrfx/internal/app"
	"bnrfx/internal/config"
	"bnrfx/internal/rate"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fxconvert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	amount := fs.Float64("amount", 0, "amount to convert")
	from := fs.String("from", "EUR", "source currency code")
	to := fs.String("to", "RON", "target currency code")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := rate.ValidateAmount(*amount); err != nil {
		_, _ = fmt.Fprintln(stderr, userMessage(err))
		return 1
	}

	appCfg, err := config.Init()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	app.SetupLogging(appCfg.Logging.Level)
	logrus.SetOutput(stderr)

	svc, closeService, err := app.NewRateService(appCfg)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome := <-svc.Acquire(ctx)
	if outcome.Err != nil {
		_, _ = fmt.Fprintln(stderr, userMessage(outcome.Err))
		return 1
	}

	if outcome.Acquisition.Offline() {
		_, _ = fmt.Fprintf(stderr, "offline mode: using rates from %s\n",
			outcome.Acquisition.Snapshot.Timestamp().Format("2006-01-02 15:04"))
	}

	result, err := convertWith(outcome.Acquisition, *amount, *from, *to)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, userMessage(err))
		return 1
	}
	_, _ = fmt.Fprintln(stdout, result)
	return 0
}
