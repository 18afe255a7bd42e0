package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// AppConfig mirrors agentConfig.json deployed next to the agent on each
// printer.
type AppConfig struct {
	ServerURL   string
	HeaderName  string
	AuthToken   string
	PrinterType string
	SubType     string
	Make        string
	BuildNumber string
	BuildDir    string
	BackupDir   string
}

func Load(path string) (AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("HeaderName", "maxshap-header")
	v.SetDefault("BuildDir", "build")
	v.SetDefault("BackupDir", "backup")
	if err := v.ReadInConfig(); err != nil {
		return AppConfig{}, fmt.Errorf("read agent config: %w", err)
	}

	cfg := AppConfig{
		ServerURL:   v.GetString("ServerUrl"),
		HeaderName:  v.GetString("HeaderName"),
		AuthToken:   v.GetString("AuthToken"),
		PrinterType: v.GetString("PrinterType"),
		SubType:     v.GetString("SubType"),
		Make:        v.GetString("Make"),
		BuildNumber: v.GetString("BuildNumber"),
		BuildDir:    v.GetString("BuildDir"),
		BackupDir:   v.GetString("BackupDir"),
	}
	if cfg.ServerURL == "" {
		return AppConfig{}, fmt.Errorf("agent config: ServerUrl is required")
	}
	return cfg, nil
}
