package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	BaseURL string `yaml:"base_url" json:"base_url"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type SessionConfig struct {
	// ExpireHours is the JWT session lifetime in hours.
	ExpireHours int    `yaml:"expire_hours" json:"expire_hours"`
	CookieName  string `yaml:"cookie_name" json:"cookie_name"`
}

type CloudinaryConfig struct {
	// URL is a cloudinary:// credential URL. Empty disables uploads.
	URL    string `yaml:"url" json:"url"`
	Folder string `yaml:"folder" json:"folder"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System     SysConfig        `yaml:"system" json:"system"`
	Web        WebConfig        `yaml:"web" json:"web"`
	Database   DBConfig         `yaml:"database" json:"database"`
	Session    SessionConfig    `yaml:"session" json:"session"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary" json:"cloudinary"`
	Logger     LogConfig        `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Appid:    "CixiAdmin",
		Location: "America/Mexico_City",
		Workdir:  "/var/cixiadmin",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1989,
		Secret: "9b6de5cc-admin-1989-b39a-cixi",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "cixi_admin",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Session: SessionConfig{
		ExpireHours: 24,
		CookieName:  "cixi_session",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/cixiadmin/cixiadmin.log",
	},
}

// LoadConfig reads the YAML config file when present and applies
// environment overrides on top. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}
	setEnvValue("CIXI_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("CIXI_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("CIXI_WEB_PORT", &cfg.Web.Port)
	setEnvValue("CIXI_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("CIXI_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("CIXI_DB_PORT", &cfg.Database.Port)
	setEnvValue("CIXI_DB_NAME", &cfg.Database.Name)
	setEnvValue("CIXI_DB_USER", &cfg.Database.User)
	setEnvValue("CIXI_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("CLOUDINARY_URL", &cfg.Cloudinary.URL)
	setEnvValue("CLOUDINARY_FOLDER", &cfg.Cloudinary.Folder)
	setEnvBoolValue("CIXI_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("CIXI_LOGGER_MODE", &cfg.Logger.Mode)
	return &cfg
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue, ok := os.LookupEnv(name); ok {
		if ivalue, err := strconv.Atoi(evalue); err == nil {
			*val = ivalue
		}
	}
}
