package main

import (
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"matchbook/api/console"
	"matchbook/infra/metrics"
	"matchbook/service"
)

func main() {
	// ---------------- Config ----------------

	v := viper.New()
	v.SetEnvPrefix("MATCHBOOK")
	v.AutomaticEnv()
	v.SetDefault("log_level", "warn")
	v.SetDefault("input", "")

	// ---------------- Logging ----------------

	// Logs go to stderr; stdout carries only protocol output.
	logger, err := buildLogger(v.GetString("log_level"))
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	// ---------------- Engine ----------------

	collector := metrics.New(prometheus.DefaultRegisterer)
	eng := service.New(logger, collector)

	// ---------------- Session ----------------

	in := os.Stdin
	if path := v.GetString("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			logger.Fatal("open input failed", zap.Error(err))
		}
		defer f.Close()
		in = f
	}

	if err := console.Run(in, os.Stdout, eng); err != nil {
		logger.Fatal("session failed", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
