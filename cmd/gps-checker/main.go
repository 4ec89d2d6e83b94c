package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flybeeper/gps-checker/internal/check"
	"github.com/flybeeper/gps-checker/internal/config"
	"github.com/flybeeper/gps-checker/internal/handler"
	"github.com/flybeeper/gps-checker/internal/parser"
	"github.com/flybeeper/gps-checker/pkg/utils"
)

var (
	// Version будет установлен при сборке через ldflags
	Version = "dev"
)

// Коды завершения
const (
	exitOK          = 0
	exitError       = 1
	exitNoValidData = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("gps-checker", flag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("format", "text", "output format: text or json")
	all := flags.Bool("all", false, "print every record, not only anomalies (text format)")
	serve := flags.Bool("serve", false, "run the HTTP API instead of checking a file")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: gps-checker [-format text|json] [-all] [file]")
		fmt.Fprintln(stderr, "       gps-checker -serve")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitError
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitError
	}

	// Отчет пишется в stdout, поэтому логи уходят в stderr
	logger := utils.NewLoggerWithOutput(cfg.Log.Level, cfg.Log.Format, stderr)
	utils.SetDefaultLogger(logger)

	opts, err := check.OptionsFromConfig(cfg, logger)
	if err != nil {
		logger.WithField("error", err).Error("Invalid check options")
		return exitError
	}
	checker := check.NewChecker(opts, logger)

	if *serve {
		return serveHTTP(cfg, checker, logger)
	}

	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return exitError
	}

	input := stdin
	if flags.NArg() > 0 {
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			logger.WithField("error", err).Error("Failed to open GPS log")
			return exitError
		}
		defer f.Close()
		input = f
	}

	report, err := checker.RunReader(context.Background(), input)
	if errors.Is(err, parser.ErrNoValidData) {
		fmt.Fprintln(stderr, "no valid GPS data in input")
		return exitNoValidData
	}
	if err != nil {
		logger.WithField("error", err).Error("GPS log check failed")
		return exitError
	}

	switch *format {
	case "json":
		err = writeJSON(stdout, report)
	default:
		err = writeText(stdout, report, *all)
	}
	if err != nil {
		logger.WithField("error", err).Error("Failed to write report")
		return exitError
	}

	return exitOK
}

func serveHTTP(cfg *config.Config, checker *check.Checker, logger *utils.Logger) int {
	handler.Version = Version
	logger.WithField("version", Version).Info("Starting GPS checker API")

	server := handler.NewServer(cfg, checker, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ждем сигнала остановки
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
	case err := <-errCh:
		logger.WithField("error", err).Error("HTTP server failed")
		return exitError
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithField("error", err).Error("Failed to shutdown HTTP server gracefully")
		return exitError
	}

	logger.Info("GPS checker API stopped")
	return exitOK
}
