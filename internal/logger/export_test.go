package logger

import "go.uber.org/zap"

// FromZap lets tests observe entries through a zaptest core.
func FromZap(z *zap.Logger) Logger {
	return &zapLogger{logger: z}
}
