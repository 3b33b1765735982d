// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"sync"

	"github.com/dalemusser/ngohub/internal/app/system/ratelimit"
	"github.com/dalemusser/ngohub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Background workers started by BuildHandler that Shutdown must stop.
var (
	bgMu         sync.Mutex
	loginLimiter *ratelimit.LoginLimiter
	uploadSweep  *workers.UploadSweeper
)

func setLoginLimiter(l *ratelimit.LoginLimiter) {
	bgMu.Lock()
	defer bgMu.Unlock()
	if loginLimiter != nil {
		loginLimiter.Stop()
	}
	loginLimiter = l
}

func setUploadSweeper(w *workers.UploadSweeper) {
	bgMu.Lock()
	defer bgMu.Unlock()
	if uploadSweep != nil {
		uploadSweep.Stop()
	}
	uploadSweep = w
}

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	setLoginLimiter(nil)
	setUploadSweeper(nil)

	if deps.DB != nil {
		logger.Info("closing SQLite database")
		if err := deps.DB.Close(); err != nil {
			logger.Error("database close failed", zap.Error(err))
			return err
		}
	}
	return nil
}
