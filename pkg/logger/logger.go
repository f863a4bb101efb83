package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sporting-life/enrollment-api/pkg/config"
	"github.com/sporting-life/enrollment-api/pkg/middleware/requestid"
)

// New builds the process logger. Production gets sampled JSON output,
// every other environment gets the development preset; LOG_FORMAT and
// LOG_LEVEL override the preset's encoding and level.
func New(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := presetFor(cfg.Env)
	zapCfg.Encoding = encodingFor(cfg.Log.Format)
	zapCfg.Level = levelFor(cfg.Log.Level, zapCfg.Level)
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

func presetFor(env string) zap.Config {
	if env == config.EnvProduction {
		return zap.NewProductionConfig()
	}
	return zap.NewDevelopmentConfig()
}

func encodingFor(format string) string {
	if format == "console" {
		return "console"
	}
	return "json"
}

func levelFor(level string, fallback zap.AtomicLevel) zap.AtomicLevel {
	if level == "" {
		return fallback
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fallback
	}
	return zap.NewAtomicLevelAt(parsed)
}

// GinMiddleware emits one structured access log line per request.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id := requestid.Value(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		l.Info("http_request", fields...)
	}
}
