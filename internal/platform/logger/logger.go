package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger wraps a zap sugared logger so callers depend on one small type.
type Logger struct {
	*zap.SugaredLogger
}

// New builds a logger for the given mode ("prod"/"production" for JSON
// output, anything else for the development console encoder).
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: z.Sugar()}, nil
}

// NewNop returns a logger that discards everything. For tests.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
