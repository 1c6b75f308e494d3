package main

import (
	"github.com/google/uuid"
	"github.com/xh3b4sd/tracer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger returns a production logger tagged with a fresh run id, so that the
// lines of concurrent invocations can be told apart.
func logger(ver bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if ver {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return log.With(zap.String("run", uuid.NewString())), nil
}
