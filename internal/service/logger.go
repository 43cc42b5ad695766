package service

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger.
// Usage in other packages: service.Logger.Warn("feed unavailable", zap.Error(err))
// It starts as a no-op so library consumers and tests can skip InitLogger.
var Logger = zap.NewNop()

// InitLogger builds the production zap logger used by every component.
func InitLogger() {
	config := zap.NewProductionConfig()

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "time"

	var err error
	Logger, err = config.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}
