package cron

import (
	"context"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/config"
	"github.com/RobbieBendick/curb-companion-backend/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// LiveExpirer ends a live session that outlived the configured maximum.
type LiveExpirer interface {
	ExpireLive(ctx context.Context, vendorID, sessionID string) error
}

// RedisOpt is the asynq connection shared by the client and the worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux routes task types to their handlers.
func NewMux(expirer LiveExpirer, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeLiveExpire, handleLiveExpiry(expirer, logger))
	return mux
}

// StartWorker runs the background worker. The returned server must be shut down
// by the caller.
func StartWorker(expirer LiveExpirer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := NewMux(expirer, logger)

	go func() {
		logger.Info("starting live expiry worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("worker failed to start", zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("worker gave up; live sessions will not expire automatically")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleLiveExpiry(expirer LiveExpirer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseLiveExpiry(task)
		if err != nil {
			logger.Warn("dropping live expiry task", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := expirer.ExpireLive(ctx, p.VendorID, p.SessionID); err != nil {
			logger.Error("failed to expire live session", zap.String("vendorId", p.VendorID), zap.String("sessionId", p.SessionID), zap.Error(err))
			return err
		}
		logger.Info("live session expired", zap.String("vendorId", p.VendorID), zap.String("sessionId", p.SessionID))
		return nil
	}
}
