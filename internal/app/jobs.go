package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/cixicommerce/cixi-admin/internal/domain"
)

const authLogRetentionDays = 90

func (a *Application) registerJobs() {
	// Nightly auth-log retention purge
	_, err := a.sched.AddFunc("@daily", a.purgeAuthLogs)
	if err != nil {
		zap.L().Error("failed to register auth log purge job", zap.Error(err))
	}
}

func (a *Application) purgeAuthLogs() {
	cutoff := time.Now().AddDate(0, 0, -authLogRetentionDays)
	result := a.gormDB.Where("opt_time < ?", cutoff).Delete(&domain.SysAuthLog{})
	if result.Error != nil {
		zap.L().Error("auth log purge failed", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		zap.L().Info("purged expired auth logs", zap.Int64("rows", result.RowsAffected))
	}
}
