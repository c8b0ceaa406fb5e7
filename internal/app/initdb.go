package app

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/pkg/common"
)

// MigrateDB creates or updates all tables.
func (a *Application) MigrateDB(track bool) error {
	migrator := a.gormDB.Migrator()
	if track {
		for _, table := range domain.Tables {
			if err := migrator.DropTable(table); err != nil {
				return err
			}
		}
	}
	return a.gormDB.AutoMigrate(domain.Tables...)
}

// InitDb seeds the records the application cannot run without.
func (a *Application) InitDb() {
	a.checkSuperAdmin()
	a.checkCategories()
}

// DropAll removes every table. Destructive, test and reset tooling only.
func (a *Application) DropAll() {
	migrator := a.gormDB.Migrator()
	for _, table := range domain.Tables {
		_ = migrator.DropTable(table)
	}
}

func (a *Application) checkSuperAdmin() {
	const superEmail = "admin@cixi.shop"
	const defaultPassword = "cixiadmin"

	var user domain.SysUser
	err := a.gormDB.Where("email = ?", superEmail).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.SysUser{
			ID:        common.UUIDint64(),
			Username:  "admin",
			Email:     superEmail,
			Password:  string(hashed),
			Role:      domain.RoleAdmin,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	if user.Role == domain.RoleAdmin {
		return
	}

	updates := map[string]interface{}{
		"role":       domain.RoleAdmin,
		"updated_at": time.Now(),
	}
	if err := a.gormDB.Model(&domain.SysUser{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default super admin role", zap.String("email", superEmail))
}

// checkCategories seeds the starter categories used by the catalog filter
// dropdown when the store is empty.
func (a *Application) checkCategories() {
	defaultCategories := []string{"Baño", "Cocina", "Decoración"}

	var count int64
	a.gormDB.Model(&domain.Category{}).Count(&count)
	if count > 0 {
		return
	}
	for _, name := range defaultCategories {
		if err := a.gormDB.Create(&domain.Category{Name: name}).Error; err != nil {
			zap.L().Error("failed to create default category", zap.String("name", name), zap.Error(err))
		} else {
			zap.L().Info("initialized default category", zap.String("name", name))
		}
	}
}
