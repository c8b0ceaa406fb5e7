package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/pkg/common"
)

// EventAuthLog carries auth and admin mutation events to the async writer.
const EventAuthLog = "authlog:write"

func (a *Application) subscribeEvents() {
	err := a.bus.SubscribeAsync(EventAuthLog, func(username, ip, action, detail string) {
		log := domain.SysAuthLog{
			ID:       common.UUIDint64(),
			Username: username,
			Ip:       ip,
			Action:   action,
			Detail:   detail,
			OptTime:  time.Now(),
		}
		if err := a.gormDB.Create(&log).Error; err != nil {
			zap.L().Error("failed to write auth log", zap.String("action", action), zap.Error(err))
		}
	}, false)
	if err != nil {
		zap.L().Error("failed to subscribe auth log writer", zap.Error(err))
	}
}

// PubAuthLog publishes an operation record without blocking the request path.
func (a *Application) PubAuthLog(username, ip, action, detail string) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(EventAuthLog, username, ip, action, detail)
}
