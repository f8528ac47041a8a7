// Command atd builds the trading bot topology from a settings document.
//
// Usage:
//
//	atd --config config.yaml
//	atd --setup --config config.yaml
//	atd --env secrets.env --log-level debug
//
// Credentials may be referenced in the document as ${VAR}; they are read from
// the environment after loading the dotenv file.
package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal"
	"github.com/vadiminshakov/atd/internal/setup"
)

const defaultEnvFile = ".env"

func main() {
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if flags.EnvPath != "" {
		err = config.LoadEnvFile(flags.EnvPath, true)
	} else {
		err = config.LoadEnvFile(defaultEnvFile, false)
	}
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(flags.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if flags.Setup {
		if err := setup.RunTUI(flags.ConfigPath); err != nil {
			logger.Fatal("setup failed", zap.Error(err))
		}
	}

	doc, err := config.Load(flags.ConfigPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	topology, err := internal.BuildTopology(doc, logger)
	if err != nil {
		logger.Fatal("failed to build topology", zap.String("config", doc.Source()), zap.Error(err))
	}

	for _, pair := range topology.Strategies.Pairs() {
		names := make([]string, 0, len(topology.Strategies[pair]))
		for _, s := range topology.Strategies[pair] {
			names = append(names, s.Kind().Title())
		}
		logger.Info("pair ready",
			zap.Stringer("pair", pair),
			zap.Bool("monitored", topology.Monitors.Watches(pair)),
			zap.String("strategies", strings.Join(names, ",")))
	}

	if delivered := topology.Announce(logger); delivered != topology.Strategies.Len() {
		logger.Warn("notification channel dropped messages",
			zap.Int("delivered", delivered),
			zap.Int("strategies", topology.Strategies.Len()))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return cfg.Build()
}
