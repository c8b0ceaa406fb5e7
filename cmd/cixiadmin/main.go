package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cixicommerce/cixi-admin/config"
	"github.com/cixicommerce/cixi-admin/internal/adminapi"
	"github.com/cixicommerce/cixi-admin/internal/app"
	"github.com/cixicommerce/cixi-admin/internal/media"
	"github.com/cixicommerce/cixi-admin/internal/session"
	"github.com/cixicommerce/cixi-admin/internal/webserver"
	"github.com/cixicommerce/cixi-admin/internal/webui"
)

var (
	confFile = flag.String("c", "cixiadmin.yml", "config file")
	initDB   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	// .env is for local development only, production uses real env vars
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	cfg := config.LoadConfig(*confFile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Stop()

	if *initDB {
		application.DropAll()
		if err := application.MigrateDB(false); err != nil {
			zap.L().Fatal("initdb failed", zap.Error(err))
		}
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	sessmgr := session.NewManager(cfg.Web.Secret, cfg.Session.CookieName, cfg.Session.ExpireHours)

	uploader, err := media.NewUploader(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
	if err != nil {
		zap.L().Fatal("cloudinary init failed", zap.Error(err))
	}
	if uploader == nil {
		zap.L().Warn("cloudinary not configured, image uploads disabled")
	}

	ws := webserver.Init(application, sessmgr, uploader)
	adminapi.InitRouter()
	if err := webui.Register(ws.Echo(), application, sessmgr, uploader); err != nil {
		zap.L().Fatal("webui init failed", zap.Error(err))
	}

	if err := ws.Start(cfg.Web.Host, cfg.Web.Port); err != nil {
		zap.L().Fatal("web server stopped", zap.Error(err))
	}
}
