package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/danielpaul/ft8encode/ft8"
	"github.com/danielpaul/ft8encode/pkg/config"
	"github.com/danielpaul/ft8encode/pkg/logbook"
	"github.com/danielpaul/ft8encode/pkg/logger"
	"github.com/danielpaul/ft8encode/pkg/metrics"
	"github.com/danielpaul/ft8encode/pkg/wav"
	"github.com/danielpaul/ft8encode/pkg/web"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	validate := flag.Bool("validate", false, "Validate configuration and exit")
	message := flag.String("message", "", "Encode a single message to a WAV file and exit, instead of running the server")
	output := flag.String("output", "out.wav", "Output WAV path when -message is set")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ft8encode %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	log := logger.New(logger.Config{
		Level:  "info",
		Format: "text",
	})

	log.Info("Starting ft8encode",
		logger.String("version", version),
		logger.String("build_time", buildTime))

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Error("Failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	if *validate {
		log.Info("Configuration is valid")
		os.Exit(0)
	}

	log.Info("Configuration loaded successfully",
		logger.String("config_file", *configFile))

	web.SetVersionInfo(version, "unknown", buildTime)

	encoder, err := ft8.New()
	if err != nil {
		log.Error("Failed to load LDPC matrices", logger.Error(err))
		os.Exit(1)
	}

	if *message != "" {
		runOneShot(log, encoder, cfg, *message, *output)
		return
	}

	runServer(log, encoder, cfg)
}

// runOneShot encodes a single message to a WAV file and exits, for use as a
// CLI tool independent of the preview server.
func runOneShot(log *logger.Logger, encoder *ft8.Encoder, cfg *config.Config, message, output string) {
	trajectory, err := encoder.Encode(message)
	if err != nil {
		log.Error("Encode failed", logger.String("message", message), logger.Error(err))
		os.Exit(1)
	}

	f, err := os.Create(output)
	if err != nil {
		log.Error("Failed to create output file", logger.String("path", output), logger.Error(err))
		os.Exit(1)
	}
	defer f.Close()

	if err := wav.Encode(f, trajectory, cfg.Encoder.BaseFreqHz, cfg.Encoder.SampleRate); err != nil {
		log.Error("Failed to write WAV file", logger.Error(err))
		os.Exit(1)
	}

	log.Info("Encoded message to WAV",
		logger.String("message", message),
		logger.String("output", output),
		logger.Int("samples", len(trajectory)))
}

// runServer starts the waveform-preview HTTP/WebSocket server, the encode
// logbook, and the Prometheus metrics endpoint, and blocks until an
// interrupt or termination signal arrives.
func runServer(log *logger.Logger, encoder *ft8.Encoder, cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	metricsCollector := metrics.NewCollector()

	if cfg.Metrics.Enabled && cfg.Metrics.Prometheus.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metricsServer := metrics.NewPrometheusServer(
				metrics.PrometheusConfig{
					Enabled: cfg.Metrics.Prometheus.Enabled,
					Port:    cfg.Metrics.Prometheus.Port,
					Path:    cfg.Metrics.Prometheus.Path,
				},
				metricsCollector,
				log.WithComponent("metrics"),
			)
			if err := metricsServer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("Prometheus metrics server error", logger.Error(err))
			}
		}()
		log.Info("Prometheus metrics server started",
			logger.Int("port", cfg.Metrics.Prometheus.Port),
			logger.String("path", cfg.Metrics.Prometheus.Path))
	}

	var logbookDB *logbook.DB
	if cfg.Logbook.Enabled {
		var err error
		logbookDB, err = logbook.NewDB(logbook.Config{Path: cfg.Logbook.DSN}, log.WithComponent("logbook"))
		if err != nil {
			log.Error("Failed to open encode logbook", logger.Error(err))
			os.Exit(1)
		}
		defer logbookDB.Close()
		log.Info("Encode logbook opened", logger.String("dsn", cfg.Logbook.DSN))
	}

	if cfg.Web.Enabled {
		var webOpts []web.Option
		webOpts = append(webOpts, web.WithMetrics(metricsCollector))
		if logbookDB != nil {
			webOpts = append(webOpts, web.WithLogbook(logbook.NewRepository(logbookDB.GetDB())))
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := web.Start(ctx, cfg.Web, log.WithComponent("web"), encoder, webOpts...); err != nil && err != context.Canceled {
				log.Error("Web server error", logger.Error(err))
			}
		}()
		log.Info("Web server started",
			logger.String("host", cfg.Web.Host),
			logger.Int("port", cfg.Web.Port))
	}

	log.Info("ft8encode initialized", logger.String("server_name", cfg.Server.Name))

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.String("signal", sig.String()))

	cancel()
	wg.Wait()

	log.Info("ft8encode stopped")
}
