package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string // "sqlite" or "mysql"
	Path   string // sqlite file
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type JWT struct {
	Secret   string
	Issuer   string
	ExpHours int
}

// Device is the shared-secret gate for printer-originated requests.
type Device struct {
	HeaderName string
	Secret     string
}

type SeedUser struct {
	Username string
	Password string
	Role     string
}

type Storage struct {
	UploadDir string
	AuditDir  string
}

type Config struct {
	HTTP    HTTP
	DB      DB
	JWT     JWT
	Device  Device
	Storage Storage
	Admin   SeedUser
	Viewer  SeedUser
}

// Well-known seed secrets inherited from the first deployment. Build() logs
// a warning whenever any of them is still in effect; override them in the
// config file before exposing the service.
const (
	DefaultAdminPassword  = "Maxshapez"
	DefaultViewerPassword = "MaxshapezViewer"
	DefaultDeviceSecret   = "R3dE7yes"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.db.driver", "sqlite")
	v.SetDefault("server.db.path", "MaxShapez.db")
	v.SetDefault("server.db.host", "127.0.0.1")
	v.SetDefault("server.db.port", 3306)
	v.SetDefault("server.db.user", "root")
	v.SetDefault("server.db.pass", "")
	v.SetDefault("server.db.name", "maxshapez")
	v.SetDefault("server.storage.upload_dir", "uploads")
	v.SetDefault("server.storage.audit_dir", "logs")
	v.SetDefault("server.device.header_name", "maxshap-header")
	v.SetDefault("server.device.secret", DefaultDeviceSecret)
	v.SetDefault("server.jwt.issuer", "maxshapez")
	v.SetDefault("server.jwt.exp_hours", 24)
	v.SetDefault("server.seed.admin.username", "admin")
	v.SetDefault("server.seed.admin.password", DefaultAdminPassword)
	v.SetDefault("server.seed.viewer.username", "viewer")
	v.SetDefault("server.seed.viewer.password", DefaultViewerPassword)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB: DB{
			Driver: v.GetString("server.db.driver"),
			Path:   v.GetString("server.db.path"),
			Host:   v.GetString("server.db.host"),
			Port:   v.GetInt("server.db.port"),
			User:   v.GetString("server.db.user"),
			Pass:   v.GetString("server.db.pass"),
			Name:   v.GetString("server.db.name"),
		},
		Device: Device{
			HeaderName: v.GetString("server.device.header_name"),
			Secret:     v.GetString("server.device.secret"),
		},
		Storage: Storage{
			UploadDir: v.GetString("server.storage.upload_dir"),
			AuditDir:  v.GetString("server.storage.audit_dir"),
		},
		Admin:  SeedUser{Username: v.GetString("server.seed.admin.username"), Password: v.GetString("server.seed.admin.password"), Role: "admin"},
		Viewer: SeedUser{Username: v.GetString("server.seed.viewer.username"), Password: v.GetString("server.seed.viewer.password"), Role: "viewer"},
	}
	cfg.JWT.Secret = v.GetString("server.jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("server.jwt.issuer")
	cfg.JWT.ExpHours = v.GetInt("server.jwt.exp_hours")
	if cfg.JWT.ExpHours <= 0 {
		cfg.JWT.ExpHours = 24
	}
	return cfg, nil
}

// UsesDefaultCredentials reports whether any of the well-known seed secrets
// survived config loading unchanged.
func (c *Config) UsesDefaultCredentials() bool {
	return c.Admin.Password == DefaultAdminPassword ||
		c.Viewer.Password == DefaultViewerPassword ||
		c.Device.Secret == DefaultDeviceSecret
}
