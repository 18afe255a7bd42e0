package initialize

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/audit"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/controllers"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/db"
	jwtutil "github.com/arpitkhare33/maxshapez-printer-update/backend/app/jwt"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/middleware"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/repo"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/services"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/storage"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/config"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/router"
)

// App is the fully wired process state. Everything is constructed once here
// and injected; no package-level singletons.
type App struct {
	Cfg    *config.Config
	Log    zerolog.Logger
	DB     *gorm.DB
	Audit  *audit.Logger
	Router http.Handler
	Users  *services.UserService
	Builds *services.BuildService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := NewLogger()

	if cfg.UsesDefaultCredentials() {
		logger.Warn().Msg("default seed credentials or device secret in use; override them before production")
	}

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := gdb.AutoMigrate(
		&models.PrinterType{}, &models.Printer{},
		&models.Build{}, &models.Download{}, &models.Log{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	auditLog, err := audit.New(cfg.Storage.AuditDir)
	if err != nil {
		return nil, err
	}
	store, err := storage.New(cfg.Storage.UploadDir)
	if err != nil {
		return nil, err
	}

	// Repos and services
	userRepo := repo.NewUserRepository(gdb)
	buildRepo := repo.NewBuildRepository(gdb)
	downloadRepo := repo.NewDownloadRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	buildSvc := services.NewBuildService(buildRepo, downloadRepo, store, logger)

	for _, seed := range []config.SeedUser{cfg.Admin, cfg.Viewer} {
		if err := userSvc.EnsureSeedUser(seed.Username, seed.Password, seed.Role); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", seed.Username, err)
		}
	}

	// Controllers and middleware
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpHours: cfg.JWT.ExpHours}
	auth := &middleware.Auth{Signer: signer}
	gate := &middleware.DeviceGate{HeaderName: cfg.Device.HeaderName, Secret: cfg.Device.Secret, Audit: auditLog}
	authCtrl := controllers.NewAuthController(userSvc, signer)
	buildCtrl := controllers.NewBuildController(buildSvc, logger)
	deviceCtrl := controllers.NewDeviceController(buildSvc, auditLog, logger)

	h := router.New(authCtrl, buildCtrl, deviceCtrl, auth, gate)
	h = middleware.Logging(logger, h)

	return &App{Cfg: cfg, Log: logger, DB: gdb, Audit: auditLog, Router: h, Users: userSvc, Builds: buildSvc}, nil
}
