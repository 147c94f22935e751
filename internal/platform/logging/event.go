package logging

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LogNarrativeEvent records the outcome of one narrative generation call.
// outcome is one of "generated", "cached", "failed" or "disabled".
func LogNarrativeEvent(ctx context.Context, provider, model, outcome string, elapsed time.Duration, err error) {
	fields := []zap.Field{
		zap.String("narrative.provider", provider),
		zap.String("narrative.model", model),
		zap.String("narrative.outcome", outcome),
		zap.Duration("narrative.duration", elapsed),
	}
	if err != nil {
		LogWarn(ctx, "narrative event", append(fields, zap.Error(err))...)
		return
	}
	LogInfo(ctx, "narrative event", fields...)
}
